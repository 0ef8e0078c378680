package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FabricRule define el consumo de materia prima por unidad producida de un producto.
// Un producto puede tener varias reglas (una por materia prima).
type FabricRule struct {
	ID                 string
	ProductID          string
	RawMaterialID      string
	ConsumptionPerUnit decimal.Decimal // ej: 2.5 kg de tela por camisa
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
