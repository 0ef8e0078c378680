package workflow_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/application/workflow"
	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
)

func newPurchaseUC(f *fixture) *workflow.PurchaseUseCase {
	return workflow.NewPurchaseUseCase(f.txRunner, f.rawMaterials, f.purchases, f.ledger, warehouseID)
}

func TestPurchaseReceive_IngresaEnBodega(t *testing.T) {
	f := newFixture()
	uc := newPurchaseUC(f)

	resp, err := uc.Receive(context.Background(), dto.PurchaseCreateRequest{
		OrderID:      "PO-001",
		SupplierName: "Textiles del Valle",
		PurchaseDate: "2026-08-01",
		Lines: []dto.PurchaseLineRequest{
			{RawMaterialID: "mat-tela", Quantity: d("50"), UnitPrice: d("8")},
			{RawMaterialID: "mat-hilo", Quantity: d("20"), UnitPrice: d("2.5")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PurchaseStatusReceived), resp.Status)
	// Total = 50×8 + 20×2.5
	assert.True(t, resp.TotalAmount.Equal(d("450")))
	require.Len(t, resp.Lines, 2)

	// El stock ingresó en la bodega central con creación perezosa
	assert.True(t, quantityAt(t, f, materialKey(warehouseID, "mat-tela")).Equal(d("50")))
	assert.True(t, quantityAt(t, f, materialKey(warehouseID, "mat-hilo")).Equal(d("20")))

	// Un movimiento PURCHASE por renglón, referenciando la compra
	movs := f.movements.byReason(entity.ReasonPurchase)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, "purchase", m.ReferenceType)
		assert.Equal(t, resp.ID, m.ReferenceID)
	}
}

func TestPurchaseReceive_TiendaExplicita(t *testing.T) {
	f := newFixture()
	uc := newPurchaseUC(f)

	_, err := uc.Receive(context.Background(), dto.PurchaseCreateRequest{
		OrderID:      "PO-002",
		SupplierName: "Textiles del Valle",
		ShopID:       "shop-1",
		PurchaseDate: "2026-08-01",
		Lines:        []dto.PurchaseLineRequest{{RawMaterialID: "mat-tela", Quantity: d("5"), UnitPrice: d("8")}},
	})
	require.NoError(t, err)
	assert.True(t, quantityAt(t, f, materialKey("shop-1", "mat-tela")).Equal(d("5")))
	assert.True(t, quantityAt(t, f, materialKey(warehouseID, "mat-tela")).IsZero())
}

// Sin OrderID explícito se genera uno único aun para compras creadas en el
// mismo segundo.
func TestPurchaseReceive_OrderIDGenerado(t *testing.T) {
	f := newFixture()
	uc := newPurchaseUC(f)

	req := dto.PurchaseCreateRequest{
		SupplierName: "Textiles del Valle",
		PurchaseDate: "2026-08-01",
		Lines: []dto.PurchaseLineRequest{
			{RawMaterialID: "mat-tela", Quantity: d("5"), UnitPrice: d("8")},
		},
	}
	primera, err := uc.Receive(context.Background(), req)
	require.NoError(t, err)
	segunda, err := uc.Receive(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(primera.OrderID, "PO-"))
	assert.True(t, strings.HasPrefix(segunda.OrderID, "PO-"))
	assert.NotEqual(t, primera.OrderID, segunda.OrderID)
}

func TestPurchaseReceive_OrderIDDuplicado(t *testing.T) {
	f := newFixture()
	uc := newPurchaseUC(f)
	req := dto.PurchaseCreateRequest{
		OrderID:      "PO-003",
		SupplierName: "Textiles del Valle",
		PurchaseDate: "2026-08-01",
		Lines:        []dto.PurchaseLineRequest{{RawMaterialID: "mat-tela", Quantity: d("5"), UnitPrice: d("8")}},
	}
	_, err := uc.Receive(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Receive(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	// El segundo intento no tocó el stock
	assert.True(t, quantityAt(t, f, materialKey(warehouseID, "mat-tela")).Equal(d("5")))
}

func TestPurchaseReceive_Validaciones(t *testing.T) {
	f := newFixture()
	uc := newPurchaseUC(f)
	ctx := context.Background()

	// Sin proveedor
	_, err := uc.Receive(ctx, dto.PurchaseCreateRequest{
		Lines: []dto.PurchaseLineRequest{{RawMaterialID: "mat-tela", Quantity: d("5"), UnitPrice: d("8")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin renglones
	_, err = uc.Receive(ctx, dto.PurchaseCreateRequest{SupplierName: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad no positiva
	_, err = uc.Receive(ctx, dto.PurchaseCreateRequest{
		SupplierName: "X",
		Lines:        []dto.PurchaseLineRequest{{RawMaterialID: "mat-tela", Quantity: d("0"), UnitPrice: d("8")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Materia prima inexistente
	_, err = uc.Receive(ctx, dto.PurchaseCreateRequest{
		SupplierName: "X",
		Lines:        []dto.PurchaseLineRequest{{RawMaterialID: "mat-nope", Quantity: d("5"), UnitPrice: d("8")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Nada mutó
	assert.Empty(t, f.movements.movements)
	assert.Empty(t, f.purchases.purchases)
}

func TestPurchaseGetYList(t *testing.T) {
	f := newFixture()
	uc := newPurchaseUC(f)
	ctx := context.Background()

	created, err := uc.Receive(ctx, dto.PurchaseCreateRequest{
		OrderID:      "PO-004",
		SupplierName: "Textiles del Valle",
		PurchaseDate: "2026-08-01",
		Lines:        []dto.PurchaseLineRequest{{RawMaterialID: "mat-tela", Quantity: d("5"), UnitPrice: d("8")}},
	})
	require.NoError(t, err)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PO-004", got.OrderID)
	require.Len(t, got.Lines, 1)

	_, err = uc.Get(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, 50, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
