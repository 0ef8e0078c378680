package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/domain/entity"
)

// StockItemResponse posición de stock con la disponibilidad derivada.
type StockItemResponse struct {
	ID                string          `json:"id"`
	ShopID            string          `json:"shop_id"`
	ItemType          string          `json:"item_type"`
	ProductID         string          `json:"product_id,omitempty"`
	RawMaterialID     string          `json:"raw_material_id,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	MinStockLevel     decimal.Decimal `json:"min_stock_level"`
	LowStock          bool            `json:"low_stock"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewStockItemResponse mapea la entidad calculando la disponibilidad.
func NewStockItemResponse(item *entity.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:                item.ID,
		ShopID:            item.ShopID,
		ItemType:          string(item.ItemType),
		ProductID:         item.ProductID,
		RawMaterialID:     item.RawMaterialID,
		Quantity:          item.Quantity,
		ReservedQuantity:  item.ReservedQuantity,
		AvailableQuantity: item.Available(),
		MinStockLevel:     item.MinStockLevel,
		LowStock:          item.IsLowStock(),
		UpdatedAt:         item.UpdatedAt,
	}
}

// StockMovementResponse movimiento del historial.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	ShopID        string          `json:"shop_id"`
	ItemType      string          `json:"item_type"`
	ProductID     string          `json:"product_id,omitempty"`
	RawMaterialID string          `json:"raw_material_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewStockMovementResponse mapea la entidad.
func NewStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:            m.ID,
		ShopID:        m.ShopID,
		ItemType:      string(m.ItemType),
		ProductID:     m.ProductID,
		RawMaterialID: m.RawMaterialID,
		Quantity:      m.Quantity,
		Reason:        string(m.Reason),
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
	}
}

// StockAdjustmentRequest body para POST /api/inventory/stocks/adjust.
// Quantity es el delta con signo (positivo suma, negativo resta).
type StockAdjustmentRequest struct {
	ShopID        string          `json:"shop_id"`
	ItemType      string          `json:"item_type"`
	ProductID     string          `json:"product_id,omitempty"`
	RawMaterialID string          `json:"raw_material_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
}

// ReconciliationMismatch posición cuya cantidad no cuadra con sus movimientos.
type ReconciliationMismatch struct {
	ShopID        string          `json:"shop_id"`
	ItemType      string          `json:"item_type"`
	ProductID     string          `json:"product_id,omitempty"`
	RawMaterialID string          `json:"raw_material_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	MovementSum   decimal.Decimal `json:"movement_sum"`
}
