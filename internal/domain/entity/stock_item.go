package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType distingue qué clase de artículo guarda una posición de stock.
type ItemType string

const (
	ItemTypeProduct     ItemType = "product"
	ItemTypeRawMaterial ItemType = "raw_material"
)

// Valid reporta si el tipo es uno de los valores cerrados del enum.
func (t ItemType) Valid() bool {
	return t == ItemTypeProduct || t == ItemTypeRawMaterial
}

// ItemKey identifica una posición de stock: tienda + tipo + artículo.
// ItemID es el ID del producto o de la materia prima según Type.
type ItemKey struct {
	ShopID string
	Type   ItemType
	ItemID string
}

// StockItem representa el stock de un artículo en una tienda (fila única por ItemKey).
// ProductID y RawMaterialID son mutuamente excluyentes según ItemType.
// La cantidad disponible (Quantity - ReservedQuantity) es derivada, nunca se persiste.
type StockItem struct {
	ID               string
	ShopID           string
	ItemType         ItemType
	ProductID        string
	RawMaterialID    string
	Quantity         decimal.Decimal // 3 decimales, nunca negativa
	ReservedQuantity decimal.Decimal // 0 <= reservada <= Quantity
	MinStockLevel    decimal.Decimal // umbral para alertas, no es piso duro
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ItemID devuelve el ID del artículo según el tipo.
func (s *StockItem) ItemID() string {
	if s.ItemType == ItemTypeRawMaterial {
		return s.RawMaterialID
	}
	return s.ProductID
}

// Key devuelve la clave de la posición.
func (s *StockItem) Key() ItemKey {
	return ItemKey{ShopID: s.ShopID, Type: s.ItemType, ItemID: s.ItemID()}
}

// Available devuelve la cantidad disponible (Quantity - ReservedQuantity).
func (s *StockItem) Available() decimal.Decimal {
	return s.Quantity.Sub(s.ReservedQuantity)
}

// IsLowStock reporta si el stock está en o por debajo del umbral mínimo.
func (s *StockItem) IsLowStock() bool {
	return s.Quantity.LessThanOrEqual(s.MinStockLevel)
}
