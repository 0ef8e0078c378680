package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeccion-api/internal/application/ledger"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

func TestReconcile_SinDiscrepancias(t *testing.T) {
	stock := newFakeStockRepo()
	movs := &fakeMovementRepo{}
	svc := ledger.NewService()
	key := productKey("shop-1", "prod-1")

	// Cada mutación vía el ledger deja su movimiento: la suma cuadra
	for _, delta := range []string{"20", "-4", "1.5"} {
		_, err := svc.AdjustQuantity(stock, movs, ledger.AdjustInput{
			Key: key, Delta: d(delta), Reason: entity.ReasonAdjustment,
		})
		require.NoError(t, err)
	}

	uc := ledger.NewQueryUseCase(stock, movs)
	mismatches, err := uc.Reconcile(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestReconcile_DetectaMutacionFueraDelLedger(t *testing.T) {
	stock := newFakeStockRepo()
	movs := &fakeMovementRepo{}
	svc := ledger.NewService()
	key := productKey("shop-1", "prod-1")

	_, err := svc.AdjustQuantity(stock, movs, ledger.AdjustInput{
		Key: key, Delta: d("20"), Reason: entity.ReasonAdjustment,
	})
	require.NoError(t, err)

	// Mutación directa sin movimiento: la reconciliación debe detectarla
	item, err := stock.Get(key)
	require.NoError(t, err)
	item.Quantity = d("23")
	require.NoError(t, stock.UpdateQuantities(item))

	uc := ledger.NewQueryUseCase(stock, movs)
	mismatches, err := uc.Reconcile(context.Background(), "shop-1")
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.True(t, mismatches[0].Item.Quantity.Equal(d("23")))
	assert.True(t, mismatches[0].MovementSum.Sum.Equal(d("20")))
}

func TestReconcile_PosicionSinMovimientos(t *testing.T) {
	stock := newFakeStockRepo()
	movs := &fakeMovementRepo{}
	key := productKey("shop-1", "prod-1")
	seed(t, stock, key, "7", "0")

	// Sembrada sin movimientos: la suma implícita es cero y no cuadra
	uc := ledger.NewQueryUseCase(stock, movs)
	mismatches, err := uc.Reconcile(context.Background(), "shop-1")
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.True(t, mismatches[0].MovementSum.Sum.IsZero())
}

// La reconciliación lista sin paginar: una discrepancia más allá de cualquier
// página por defecto también debe aparecer.
func TestReconcile_RecorreTodasLasPosiciones(t *testing.T) {
	stock := newFakeStockRepo()
	movs := &fakeMovementRepo{}
	svc := ledger.NewService()

	for _, id := range []string{"prod-1", "prod-2", "prod-3", "prod-4"} {
		_, err := svc.AdjustQuantity(stock, movs, ledger.AdjustInput{
			Key: productKey("shop-1", id), Delta: d("10"), Reason: entity.ReasonAdjustment,
		})
		require.NoError(t, err)
	}
	// Solo la última posición (en orden de listado) se desajusta
	item, err := stock.Get(productKey("shop-1", "prod-4"))
	require.NoError(t, err)
	item.Quantity = d("11")
	require.NoError(t, stock.UpdateQuantities(item))

	uc := ledger.NewQueryUseCase(stock, movs)
	mismatches, err := uc.Reconcile(context.Background(), "shop-1")
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.Equal(t, "prod-4", mismatches[0].Item.ProductID)
}

// El fake respeta el contrato de paginación del repo real: Limit > 0 pagina,
// Limit <= 0 lista todo.
func TestListStocks_Paginacion(t *testing.T) {
	stock := newFakeStockRepo()
	for _, id := range []string{"prod-1", "prod-2", "prod-3"} {
		seed(t, stock, productKey("shop-1", id), "5", "0")
	}
	uc := ledger.NewQueryUseCase(stock, &fakeMovementRepo{})

	page, err := uc.ListStocks(context.Background(), repository.StockFilter{ShopID: "shop-1", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	resto, err := uc.ListStocks(context.Background(), repository.StockFilter{ShopID: "shop-1", Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, resto, 1)
	assert.Equal(t, "prod-3", resto[0].ProductID)

	todo, err := uc.ListStocks(context.Background(), repository.StockFilter{ShopID: "shop-1"})
	require.NoError(t, err)
	assert.Len(t, todo, 3)
}

func TestRetention(t *testing.T) {
	movs := &fakeMovementRepo{}
	viejo := &entity.StockMovement{ID: "m-1", CreatedAt: time.Now().AddDate(0, 0, -120)}
	reciente := &entity.StockMovement{ID: "m-2", CreatedAt: time.Now().AddDate(0, 0, -5)}
	require.NoError(t, movs.Create(viejo))
	require.NoError(t, movs.Create(reciente))

	uc := ledger.NewRetentionUseCase(movs, 90)
	assert.True(t, uc.Enabled())
	deleted, err := uc.PruneOld(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Len(t, movs.movements, 1)
	assert.Equal(t, "m-2", movs.movements[0].ID)
}

func TestRetention_Desactivada(t *testing.T) {
	movs := &fakeMovementRepo{}
	require.NoError(t, movs.Create(&entity.StockMovement{ID: "m-1", CreatedAt: time.Now().AddDate(0, 0, -400)}))

	uc := ledger.NewRetentionUseCase(movs, 0)
	assert.False(t, uc.Enabled())
	deleted, err := uc.PruneOld(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.Len(t, movs.movements, 1)
}
