package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/domain/entity"
)

// PurchaseLineRequest renglón para crear una compra.
type PurchaseLineRequest struct {
	RawMaterialID string          `json:"raw_material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

// PurchaseCreateRequest body para POST /api/purchases.
// ShopID opcional: por defecto la bodega central configurada.
type PurchaseCreateRequest struct {
	OrderID         string                `json:"order_id,omitempty"`
	SupplierName    string                `json:"supplier_name"`
	SupplierInvoice string                `json:"supplier_invoice,omitempty"`
	ShopID          string                `json:"shop_id,omitempty"`
	PurchaseDate    string                `json:"purchase_date"`
	Notes           string                `json:"notes,omitempty"`
	Lines           []PurchaseLineRequest `json:"purchase_lines"`
}

// PurchaseLineResponse renglón de compra en respuestas.
type PurchaseLineResponse struct {
	ID            string          `json:"id"`
	RawMaterialID string          `json:"raw_material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// PurchaseResponse compra con sus renglones.
type PurchaseResponse struct {
	ID              string                 `json:"id"`
	OrderID         string                 `json:"order_id"`
	SupplierName    string                 `json:"supplier_name"`
	SupplierInvoice string                 `json:"supplier_invoice,omitempty"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	Status          string                 `json:"status"`
	PurchaseDate    string                 `json:"purchase_date"`
	ReceivedDate    string                 `json:"received_date,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	Lines           []PurchaseLineResponse `json:"purchase_lines"`
}

// NewPurchaseResponse mapea la cabecera y sus renglones.
func NewPurchaseResponse(p *entity.Purchase, lines []*entity.PurchaseLine) *PurchaseResponse {
	resp := &PurchaseResponse{
		ID:              p.ID,
		OrderID:         p.OrderID,
		SupplierName:    p.SupplierName,
		SupplierInvoice: p.SupplierInvoice,
		TotalAmount:     p.TotalAmount,
		Status:          string(p.Status),
		PurchaseDate:    p.PurchaseDate,
		ReceivedDate:    p.ReceivedDate,
		Notes:           p.Notes,
		Lines:           make([]PurchaseLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, PurchaseLineResponse{
			ID:            l.ID,
			RawMaterialID: l.RawMaterialID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			TotalPrice:    l.TotalPrice,
		})
	}
	return resp
}
