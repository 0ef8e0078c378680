package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// PaymentMethod medios de pago soportados (solo efectivo y transferencia).
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// Valid reporta si el medio de pago pertenece al enum cerrado.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodBankTransfer
}

// Sale venta en tienda. Se confirma directamente en COMPLETED; la deducción
// del ledger ocurre en la misma transacción que crea la cabecera.
type Sale struct {
	ID             string
	SaleNumber     string // natural key
	ShopID         string
	CustomerName   string
	CustomerPhone  string
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	Status         SaleStatus
	SaleDate       string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SaleLine renglón de una venta.
type SaleLine struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

// Payment pago asociado a una venta. Sin efecto en el ledger.
type Payment struct {
	ID            string
	SaleID        string
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	PaymentDate   string
	Reference     string // recibo de caja o referencia de transferencia
	Notes         string
	CreatedAt     time.Time
}
