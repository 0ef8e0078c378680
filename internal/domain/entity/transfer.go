package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus estado de un traslado entre tiendas.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusReceived  TransferStatus = "received"
	TransferStatusCancelled TransferStatus = "cancelled"
)

// Transfer traslado de productos entre tiendas, en dos fases:
// al crearlo se reserva el stock en origen (sin mover cantidad); al recibirlo
// se descuenta en origen y se ingresa en destino.
type Transfer struct {
	ID             string
	TransferNumber string // natural key
	FromShopID     string
	ToShopID       string
	Status         TransferStatus
	TransferDate   string
	ReceivedDate   string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TransferLine renglón de un traslado.
type TransferLine struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal
	CreatedAt  time.Time
}
