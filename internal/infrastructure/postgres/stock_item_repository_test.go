package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// ─────────────────────────────────────────────
// Captura de SQL sin base de datos
// ─────────────────────────────────────────────

// captureQuerier registra el SQL y los argumentos emitidos por el repositorio.
type captureQuerier struct {
	sql  string
	args []any
}

func (c *captureQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.sql, c.args = sql, args
	return pgconn.CommandTag{}, nil
}

func (c *captureQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.sql, c.args = sql, args
	return emptyRows{}, nil
}

func (c *captureQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	c.sql, c.args = sql, args
	return emptyRows{}
}

// emptyRows resultado vacío que satisface pgx.Rows.
type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(dest ...any) error                       { return pgx.ErrNoRows }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

// ─────────────────────────────────────────────
// List: convención de paginación
// ─────────────────────────────────────────────

// Con Limit <= 0 la consulta no debe llevar LIMIT/OFFSET: la reconciliación
// lista todas las posiciones de una tienda con el filtro {ShopID: ...}.
func TestStockItemList_SinLimiteListaTodo(t *testing.T) {
	q := &captureQuerier{}
	repo := NewStockItemRepository(q)

	_, err := repo.List(repository.StockFilter{ShopID: "shop-1"})
	require.NoError(t, err)

	assert.NotContains(t, q.sql, "LIMIT")
	assert.NotContains(t, q.sql, "OFFSET")
	assert.Equal(t, []any{"shop-1"}, q.args)
}

func TestStockItemList_ConPaginacion(t *testing.T) {
	q := &captureQuerier{}
	repo := NewStockItemRepository(q)

	_, err := repo.List(repository.StockFilter{
		ShopID:   "shop-1",
		ItemType: entity.ItemTypeProduct,
		Limit:    50,
		Offset:   100,
	})
	require.NoError(t, err)

	assert.Contains(t, q.sql, "LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{"shop-1", "product", 50, 100}, q.args)
}

func TestStockMovementList_SinLimiteListaTodo(t *testing.T) {
	q := &captureQuerier{}
	repo := NewStockMovementRepository(q)

	_, err := repo.List(repository.MovementFilter{ShopID: "shop-1"})
	require.NoError(t, err)

	assert.NotContains(t, q.sql, "LIMIT")
	assert.NotContains(t, q.sql, "OFFSET")
	assert.Equal(t, []any{"shop-1"}, q.args)
}

func TestStockMovementList_ConPaginacion(t *testing.T) {
	q := &captureQuerier{}
	repo := NewStockMovementRepository(q)

	_, err := repo.List(repository.MovementFilter{ShopID: "shop-1", Limit: 20, Offset: 40})
	require.NoError(t, err)

	assert.Contains(t, q.sql, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{"shop-1", 20, 40}, q.args)
}
