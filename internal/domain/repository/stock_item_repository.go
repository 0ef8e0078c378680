package repository

import "github.com/jhoicas/confeccion-api/internal/domain/entity"

// StockFilter filtros para listar posiciones de stock.
type StockFilter struct {
	ShopID       string
	ItemType     entity.ItemType
	ProductID    string
	RawMaterialID string
	LowStockOnly bool
	Limit        int
	Offset       int
}

// StockItemRepository puerto de persistencia para posiciones de stock.
// Get y GetForUpdate retornan nil (sin error) cuando la posición no existe;
// la creación perezosa la decide el ledger, nunca el repositorio.
type StockItemRepository interface {
	Get(key entity.ItemKey) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) para serializar
	// el read-then-write de mutaciones concurrentes sobre la misma posición.
	GetForUpdate(key entity.ItemKey) (*entity.StockItem, error)
	Create(item *entity.StockItem) error
	// UpdateQuantities persiste quantity, reserved_quantity y updated_at.
	UpdateQuantities(item *entity.StockItem) error
	List(filter StockFilter) ([]*entity.StockItem, error)
}
