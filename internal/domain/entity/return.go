package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnReason motivo de una devolución.
type ReturnReason string

const (
	ReturnReasonDefective          ReturnReason = "defective"
	ReturnReasonWrongSize          ReturnReason = "wrong_size"
	ReturnReasonCustomerChangeMind ReturnReason = "customer_change_mind"
	ReturnReasonOther              ReturnReason = "other"
)

// Valid reporta si el motivo pertenece al enum cerrado.
func (r ReturnReason) Valid() bool {
	switch r {
	case ReturnReasonDefective, ReturnReasonWrongSize, ReturnReasonCustomerChangeMind, ReturnReasonOther:
		return true
	}
	return false
}

// Return devolución de un producto. Reingresa stock en la tienda de la venta
// original, o en la bodega central si no está ligada a una venta.
type Return struct {
	ID           string
	ReturnNumber string // natural key
	SaleID       string // opcional
	ProductID    string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	TotalAmount  decimal.Decimal
	Reason       ReturnReason
	Notes        string
	ReturnDate   string
	CreatedAt    time.Time
}
