package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/domain/entity"
)

// ReturnCreateRequest body para POST /api/returns.
// SaleID opcional: si se envía, el stock se reingresa en la tienda de la venta.
type ReturnCreateRequest struct {
	ReturnNumber string          `json:"return_number"`
	SaleID       string          `json:"sale_id,omitempty"`
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Reason       string          `json:"reason"`
	Notes        string          `json:"notes,omitempty"`
	ReturnDate   string          `json:"return_date"`
}

// ReturnResponse devolución creada.
type ReturnResponse struct {
	ID           string          `json:"id"`
	ReturnNumber string          `json:"return_number"`
	SaleID       string          `json:"sale_id,omitempty"`
	ShopID       string          `json:"shop_id"`
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Reason       string          `json:"reason"`
	Notes        string          `json:"notes,omitempty"`
	ReturnDate   string          `json:"return_date"`
}

// NewReturnResponse mapea la devolución; shopID es la tienda acreditada.
func NewReturnResponse(r *entity.Return, shopID string) *ReturnResponse {
	return &ReturnResponse{
		ID:           r.ID,
		ReturnNumber: r.ReturnNumber,
		SaleID:       r.SaleID,
		ShopID:       shopID,
		ProductID:    r.ProductID,
		Quantity:     r.Quantity,
		UnitPrice:    r.UnitPrice,
		TotalAmount:  r.TotalAmount,
		Reason:       string(r.Reason),
		Notes:        r.Notes,
		ReturnDate:   r.ReturnDate,
	}
}
