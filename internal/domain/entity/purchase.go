package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus estado de una orden de compra.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusReceived  PurchaseStatus = "received"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// Purchase orden de compra de materias primas a un proveedor.
// El flujo observado recibe de inmediato: se crea en estado RECEIVED y
// el ingreso al ledger ocurre en la misma transacción.
type Purchase struct {
	ID              string
	OrderID         string // natural key, generada si no se provee
	SupplierName    string
	SupplierInvoice string
	TotalAmount     decimal.Decimal
	Status          PurchaseStatus
	PurchaseDate    string
	ReceivedDate    string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PurchaseLine renglón de una orden de compra.
type PurchaseLine struct {
	ID            string
	PurchaseID    string
	RawMaterialID string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	CreatedAt     time.Time
}
