package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/domain/entity"
)

// SaleLineRequest renglón para crear una venta.
type SaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PaymentRequest pago de una venta (sin efecto en el ledger).
type PaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   string          `json:"payment_date"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// SaleCreateRequest body para POST /api/sales.
type SaleCreateRequest struct {
	SaleNumber     string            `json:"sale_number"`
	ShopID         string            `json:"shop_id"`
	CustomerName   string            `json:"customer_name,omitempty"`
	CustomerPhone  string            `json:"customer_phone,omitempty"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	SaleDate       string            `json:"sale_date"`
	Notes          string            `json:"notes,omitempty"`
	Lines          []SaleLineRequest `json:"sale_lines"`
	Payments       []PaymentRequest  `json:"payments,omitempty"`
}

// SaleLineResponse renglón de venta en respuestas.
type SaleLineResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   string          `json:"payment_date"`
	Reference     string          `json:"reference,omitempty"`
}

// SaleResponse venta con renglones y pagos.
type SaleResponse struct {
	ID             string             `json:"id"`
	SaleNumber     string             `json:"sale_number"`
	ShopID         string             `json:"shop_id"`
	CustomerName   string             `json:"customer_name,omitempty"`
	CustomerPhone  string             `json:"customer_phone,omitempty"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	FinalAmount    decimal.Decimal    `json:"final_amount"`
	Status         string             `json:"status"`
	SaleDate       string             `json:"sale_date"`
	Notes          string             `json:"notes,omitempty"`
	Lines          []SaleLineResponse `json:"sale_lines"`
	Payments       []PaymentResponse  `json:"payments,omitempty"`
}

// NewSaleResponse mapea la venta con sus renglones y pagos.
func NewSaleResponse(s *entity.Sale, lines []*entity.SaleLine, payments []*entity.Payment) *SaleResponse {
	resp := &SaleResponse{
		ID:             s.ID,
		SaleNumber:     s.SaleNumber,
		ShopID:         s.ShopID,
		CustomerName:   s.CustomerName,
		CustomerPhone:  s.CustomerPhone,
		TotalAmount:    s.TotalAmount,
		DiscountAmount: s.DiscountAmount,
		FinalAmount:    s.FinalAmount,
		Status:         string(s.Status),
		SaleDate:       s.SaleDate,
		Notes:          s.Notes,
		Lines:          make([]SaleLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, SaleLineResponse{
			ID:         l.ID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.TotalPrice,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:            p.ID,
			Amount:        p.Amount,
			PaymentMethod: string(p.PaymentMethod),
			PaymentDate:   p.PaymentDate,
			Reference:     p.Reference,
		})
	}
	return resp
}
