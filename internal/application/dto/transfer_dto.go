package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/domain/entity"
)

// TransferLineRequest renglón para crear un traslado.
type TransferLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// TransferCreateRequest body para POST /api/transfers.
type TransferCreateRequest struct {
	TransferNumber string                `json:"transfer_number"`
	FromShopID     string                `json:"from_shop_id"`
	ToShopID       string                `json:"to_shop_id"`
	TransferDate   string                `json:"transfer_date"`
	Notes          string                `json:"notes,omitempty"`
	Lines          []TransferLineRequest `json:"transfer_lines"`
}

// TransferLineResponse renglón de traslado en respuestas.
type TransferLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// TransferResponse traslado con sus renglones.
type TransferResponse struct {
	ID             string                 `json:"id"`
	TransferNumber string                 `json:"transfer_number"`
	FromShopID     string                 `json:"from_shop_id"`
	ToShopID       string                 `json:"to_shop_id"`
	Status         string                 `json:"status"`
	TransferDate   string                 `json:"transfer_date"`
	ReceivedDate   string                 `json:"received_date,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	Lines          []TransferLineResponse `json:"transfer_lines"`
}

// NewTransferResponse mapea el traslado con sus renglones.
func NewTransferResponse(t *entity.Transfer, lines []*entity.TransferLine) *TransferResponse {
	resp := &TransferResponse{
		ID:             t.ID,
		TransferNumber: t.TransferNumber,
		FromShopID:     t.FromShopID,
		ToShopID:       t.ToShopID,
		Status:         string(t.Status),
		TransferDate:   t.TransferDate,
		ReceivedDate:   t.ReceivedDate,
		Notes:          t.Notes,
		Lines:          make([]TransferLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, TransferLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			TotalCost: l.TotalCost,
		})
	}
	return resp
}
