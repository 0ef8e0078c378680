package ledger

import (
	"context"

	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// QueryUseCase superficie de solo lectura sobre stock y movimientos,
// consumida por reportes y por el endpoint de auditoría.
type QueryUseCase struct {
	stockRepo repository.StockItemRepository
	movRepo   repository.StockMovementRepository
}

// NewQueryUseCase construye el caso de uso con repos atados al pool.
func NewQueryUseCase(stockRepo repository.StockItemRepository, movRepo repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// ListStocks lista posiciones con filtros (tienda, tipo, artículo, bajo stock).
func (uc *QueryUseCase) ListStocks(ctx context.Context, filter repository.StockFilter) ([]*entity.StockItem, error) {
	return uc.stockRepo.List(filter)
}

// ListMovements lista movimientos del más reciente al más antiguo.
func (uc *QueryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return uc.movRepo.List(filter)
}

// Mismatch posición cuya cantidad no coincide con la suma de sus movimientos.
type Mismatch struct {
	Item        *entity.StockItem
	MovementSum repository.ItemMovementSum
}

// Reconcile compara, por posición, la cantidad en mano contra la suma con signo
// de sus movimientos. La igualdad es una propiedad sistémica, no una constraint:
// una discrepancia indica mutación por fuera del ledger o movimientos podados.
func (uc *QueryUseCase) Reconcile(ctx context.Context, shopID string) ([]Mismatch, error) {
	sums, err := uc.movRepo.SumsByShop(shopID)
	if err != nil {
		return nil, err
	}
	sumsByKey := make(map[entity.ItemKey]repository.ItemMovementSum, len(sums))
	for _, s := range sums {
		key := entity.ItemKey{ShopID: s.ShopID, Type: s.ItemType, ItemID: s.ProductID}
		if s.ItemType == entity.ItemTypeRawMaterial {
			key.ItemID = s.RawMaterialID
		}
		sumsByKey[key] = s
	}

	items, err := uc.stockRepo.List(repository.StockFilter{ShopID: shopID})
	if err != nil {
		return nil, err
	}
	var mismatches []Mismatch
	for _, item := range items {
		sum := sumsByKey[item.Key()]
		if !item.Quantity.Equal(sum.Sum) {
			mismatches = append(mismatches, Mismatch{Item: item, MovementSum: sum})
		}
	}
	return mismatches, nil
}
