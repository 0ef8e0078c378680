package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/domain/entity"
)

// MovementFilter filtros para consultar el historial de movimientos.
type MovementFilter struct {
	ShopID        string
	ItemType      entity.ItemType
	ProductID     string
	RawMaterialID string
	Reason        entity.MovementReason
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// ItemMovementSum suma con signo de los movimientos de una posición
// (propiedad de reconciliación: debe igualar la cantidad en mano).
type ItemMovementSum struct {
	ShopID        string
	ItemType      entity.ItemType
	ProductID     string
	RawMaterialID string
	Sum           decimal.Decimal
}

// StockMovementRepository puerto de persistencia del historial append-only.
// Los movimientos nunca se actualizan; solo se crean y, por retención, se
// eliminan en bloque por antigüedad.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// List retorna movimientos del más reciente al más antiguo.
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	// SumByItem suma con signo de todos los movimientos de una posición.
	SumByItem(key entity.ItemKey) (decimal.Decimal, error)
	// SumsByShop sumas por artículo de una tienda (vacío = todas las tiendas).
	SumsByShop(shopID string) ([]ItemMovementSum, error)
	// DeleteOlderThan elimina movimientos anteriores al corte y retorna cuántos.
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
