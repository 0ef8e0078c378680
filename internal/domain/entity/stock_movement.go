package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementReason clasifica la causa de un movimiento del ledger.
type MovementReason string

const (
	ReasonPurchase          MovementReason = "purchase"
	ReasonProductionAdd     MovementReason = "production_add"
	ReasonProductionConsume MovementReason = "production_consume"
	ReasonTransferIn        MovementReason = "transfer_in"
	ReasonTransferOut       MovementReason = "transfer_out"
	ReasonSale              MovementReason = "sale"
	ReasonReturn            MovementReason = "return"
	ReasonAdjustment        MovementReason = "adjustment"
)

// Valid reporta si la razón pertenece al enum cerrado.
func (r MovementReason) Valid() bool {
	switch r {
	case ReasonPurchase, ReasonProductionAdd, ReasonProductionConsume,
		ReasonTransferIn, ReasonTransferOut, ReasonSale, ReasonReturn, ReasonAdjustment:
		return true
	}
	return false
}

// StockMovement registro inmutable de una mutación del ledger (append-only).
// Quantity es el delta con signo: positivo entrada, negativo salida.
// ReferenceType/ReferenceID apuntan al documento de negocio que causó el movimiento.
type StockMovement struct {
	ID            string
	ShopID        string
	ItemType      ItemType
	ProductID     string
	RawMaterialID string
	Quantity      decimal.Decimal
	Reason        MovementReason
	ReferenceType string
	ReferenceID   string
	Notes         string
	CreatedAt     time.Time
}
