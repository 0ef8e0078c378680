package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una prenda terminada (SKU de venta).
type Product struct {
	ID          string
	SKU         string // único
	Name        string
	Description string
	Category    string
	UnitPrice   decimal.Decimal // precio de venta
	CostPrice   decimal.Decimal // costo unitario de referencia
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RawMaterial representa una materia prima (tela, hilo, botones...).
type RawMaterial struct {
	ID          string
	SKU         string // único
	Name        string
	Description string
	Unit        string          // kg, metros, piezas...
	UnitPrice   decimal.Decimal // costo de compra por unidad
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
