package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/application/workflow"
	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
)

func newProductionUC(f *fixture) *workflow.ProductionUseCase {
	return workflow.NewProductionUseCase(f.txRunner, f.products, f.rawMaterials, f.production, f.ledger, warehouseID)
}

func TestProductionCreate_SinEfectoEnLedger(t *testing.T) {
	f := newFixture()
	uc := newProductionUC(f)

	resp, err := uc.Create(context.Background(), dto.ProductionRunCreateRequest{
		RunNumber: "OP-001",
		LaborCost: d("100"),
		Lines:     []dto.ProductionLineRequest{{ProductID: "prod-camisa", PlannedQuantity: d("10")}},
		Consumptions: []dto.ProductionConsumptionRequest{
			{RawMaterialID: "mat-tela", PlannedConsumption: d("25")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ProductionStatusPlanned), resp.Status)
	require.Len(t, resp.Lines, 1)
	require.Len(t, resp.Consumptions, 1)

	// Crear la orden no mueve stock
	assert.Empty(t, f.movements.movements)
	assert.Empty(t, f.stock.items)
}

// Sin consumos explícitos se derivan de las reglas de tela:
// consumption_per_unit × cantidad planeada.
func TestProductionCreate_DerivaConsumosDeReglas(t *testing.T) {
	f := newFixture()
	uc := newProductionUC(f)
	f.fabricRules.rules = []*entity.FabricRule{
		{ID: "fr-1", ProductID: "prod-camisa", RawMaterialID: "mat-tela", ConsumptionPerUnit: d("2.5")},
		{ID: "fr-2", ProductID: "prod-camisa", RawMaterialID: "mat-hilo", ConsumptionPerUnit: d("0.5")},
	}

	resp, err := uc.Create(context.Background(), dto.ProductionRunCreateRequest{
		RunNumber: "OP-002",
		Lines:     []dto.ProductionLineRequest{{ProductID: "prod-camisa", PlannedQuantity: d("10")}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Consumptions, 2)

	planned := make(map[string]string)
	for _, c := range resp.Consumptions {
		planned[c.RawMaterialID] = c.PlannedConsumption.String()
	}
	assert.Equal(t, "25", planned["mat-tela"])
	assert.Equal(t, "5", planned["mat-hilo"])
}

func TestProductionComplete_ConsumeProduceYCostea(t *testing.T) {
	f := newFixture()
	uc := newProductionUC(f)
	seedStock(t, f, materialKey(warehouseID, "mat-tela"), "100", "0")
	seedStock(t, f, materialKey(warehouseID, "mat-hilo"), "30", "0")
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.ProductionRunCreateRequest{
		RunNumber:    "OP-003",
		LaborCost:    d("100"),
		OverheadCost: d("40"),
		Lines:        []dto.ProductionLineRequest{{ProductID: "prod-camisa", PlannedQuantity: d("10")}},
		Consumptions: []dto.ProductionConsumptionRequest{
			{RawMaterialID: "mat-tela", PlannedConsumption: d("25")},
			{RawMaterialID: "mat-hilo", PlannedConsumption: d("5")},
		},
	})
	require.NoError(t, err)

	resp, err := uc.Complete(ctx, created.ID, dto.ProductionCompleteRequest{EndDate: "2026-08-15"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ProductionStatusCompleted), resp.Status)
	// Sin cantidades reales en el request, se usan las planeadas
	assert.True(t, resp.ActualQuantity.Equal(d("10")))
	// Costo: 25×8 + 5×2.5 + 100 + 40
	assert.True(t, resp.TotalCost.Equal(d("352.5")), "costo total %s", resp.TotalCost)
	assert.Equal(t, "2026-08-15", resp.EndDate)

	// Materia prima consumida en bodega, producto terminado ingresado
	assert.True(t, quantityAt(t, f, materialKey(warehouseID, "mat-tela")).Equal(d("75")))
	assert.True(t, quantityAt(t, f, materialKey(warehouseID, "mat-hilo")).Equal(d("25")))
	assert.True(t, quantityAt(t, f, productKey(warehouseID, "prod-camisa")).Equal(d("10")))

	assert.Len(t, f.movements.byReason(entity.ReasonProductionConsume), 2)
	assert.Len(t, f.movements.byReason(entity.ReasonProductionAdd), 1)
}

func TestProductionComplete_CantidadesReales(t *testing.T) {
	f := newFixture()
	uc := newProductionUC(f)
	seedStock(t, f, materialKey(warehouseID, "mat-tela"), "100", "0")
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.ProductionRunCreateRequest{
		RunNumber: "OP-004",
		LaborCost: d("50"),
		Lines:     []dto.ProductionLineRequest{{ProductID: "prod-camisa", PlannedQuantity: d("10")}},
		Consumptions: []dto.ProductionConsumptionRequest{
			{RawMaterialID: "mat-tela", PlannedConsumption: d("25")},
		},
	})
	require.NoError(t, err)

	resp, err := uc.Complete(ctx, created.ID, dto.ProductionCompleteRequest{
		Lines:        []dto.ActualLineQuantity{{ProductID: "prod-camisa", ActualQuantity: d("9")}},
		Consumptions: []dto.ActualConsumption{{RawMaterialID: "mat-tela", ActualConsumption: d("27")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.ActualQuantity.Equal(d("9")))
	// Costo con el consumo real: 27×8 + 50
	assert.True(t, resp.TotalCost.Equal(d("266")))
	assert.True(t, quantityAt(t, f, materialKey(warehouseID, "mat-tela")).Equal(d("73")))
	assert.True(t, quantityAt(t, f, productKey(warehouseID, "prod-camisa")).Equal(d("9")))
}

func TestProductionComplete_MateriaPrimaInsuficiente(t *testing.T) {
	f := newFixture()
	uc := newProductionUC(f)
	seedStock(t, f, materialKey(warehouseID, "mat-tela"), "100", "0")
	seedStock(t, f, materialKey(warehouseID, "mat-hilo"), "3", "0")
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.ProductionRunCreateRequest{
		RunNumber: "OP-005",
		Lines:     []dto.ProductionLineRequest{{ProductID: "prod-camisa", PlannedQuantity: d("10")}},
		Consumptions: []dto.ProductionConsumptionRequest{
			{RawMaterialID: "mat-tela", PlannedConsumption: d("25")},
			{RawMaterialID: "mat-hilo", PlannedConsumption: d("5")},
		},
	})
	require.NoError(t, err)

	// El pre-chequeo cubre TODOS los consumos antes de mutar: la tela,
	// que sí alcanzaba, tampoco se consume
	_, err = uc.Complete(ctx, created.ID, dto.ProductionCompleteRequest{})
	require.Error(t, err)
	var insuf *domain.InsufficientStockError
	require.True(t, errors.As(err, &insuf))
	assert.Equal(t, "mat-hilo", insuf.ItemID)
	assert.True(t, quantityAt(t, f, materialKey(warehouseID, "mat-tela")).Equal(d("100")))
	assert.Empty(t, f.movements.movements)

	// La orden sigue en PLANNED y puede completarse después
	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ProductionStatusPlanned), got.Status)
}

func TestProductionComplete_DobleComplete(t *testing.T) {
	f := newFixture()
	uc := newProductionUC(f)
	seedStock(t, f, materialKey(warehouseID, "mat-tela"), "100", "0")
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.ProductionRunCreateRequest{
		RunNumber: "OP-006",
		Lines:     []dto.ProductionLineRequest{{ProductID: "prod-camisa", PlannedQuantity: d("10")}},
		Consumptions: []dto.ProductionConsumptionRequest{
			{RawMaterialID: "mat-tela", PlannedConsumption: d("25")},
		},
	})
	require.NoError(t, err)
	_, err = uc.Complete(ctx, created.ID, dto.ProductionCompleteRequest{})
	require.NoError(t, err)

	// Completar dos veces no consume ni produce de nuevo
	_, err = uc.Complete(ctx, created.ID, dto.ProductionCompleteRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.True(t, quantityAt(t, f, materialKey(warehouseID, "mat-tela")).Equal(d("75")))
	assert.True(t, quantityAt(t, f, productKey(warehouseID, "prod-camisa")).Equal(d("10")))
}

func TestProductionCreate_NumeroDuplicado(t *testing.T) {
	f := newFixture()
	uc := newProductionUC(f)
	req := dto.ProductionRunCreateRequest{
		RunNumber: "OP-007",
		Lines:     []dto.ProductionLineRequest{{ProductID: "prod-camisa", PlannedQuantity: d("10")}},
	}
	_, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestProductionComplete_OrdenInexistente(t *testing.T) {
	f := newFixture()
	uc := newProductionUC(f)
	_, err := uc.Complete(context.Background(), "no-existe", dto.ProductionCompleteRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
