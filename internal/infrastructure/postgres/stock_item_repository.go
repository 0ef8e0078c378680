package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL
// (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, shop_id, item_type, product_id, raw_material_id,
	quantity, reserved_quantity, min_stock_level, created_at, updated_at`

// keyClause arma el WHERE de la clave natural (tienda, tipo, artículo).
func keyClause(key entity.ItemKey) (string, []any) {
	itemCol := "product_id"
	if key.Type == entity.ItemTypeRawMaterial {
		itemCol = "raw_material_id"
	}
	clause := fmt.Sprintf("shop_id = $1 AND item_type = $2 AND %s = $3", itemCol)
	return clause, []any{key.ShopID, string(key.Type), key.ItemID}
}

// Get obtiene la posición de stock de un artículo en una tienda.
// Retorna nil sin error si no existe.
func (r *StockItemRepo) Get(key entity.ItemKey) (*entity.StockItem, error) {
	clause, args := keyClause(key)
	query := fmt.Sprintf(`SELECT %s FROM stock_items WHERE %s`, stockItemColumns, clause)
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// GetForUpdate obtiene la posición y bloquea la fila (SELECT ... FOR UPDATE).
// Retorna nil sin error si no existe; la creación perezosa la decide el ledger.
func (r *StockItemRepo) GetForUpdate(key entity.ItemKey) (*entity.StockItem, error) {
	clause, args := keyClause(key)
	query := fmt.Sprintf(`SELECT %s FROM stock_items WHERE %s FOR UPDATE`, stockItemColumns, clause)
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return item, nil
}

// Create inserta una posición nueva.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, shop_id, item_type, product_id, raw_material_id,
			quantity, reserved_quantity, min_stock_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ShopID, string(item.ItemType),
		nullable(item.ProductID), nullable(item.RawMaterialID),
		item.Quantity, item.ReservedQuantity, item.MinStockLevel,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock item: %w", err)
	}
	return nil
}

// UpdateQuantities persiste quantity, reserved_quantity y updated_at.
func (r *StockItemRepo) UpdateQuantities(item *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET quantity = $2, reserved_quantity = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Quantity, item.ReservedQuantity, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock item: fila no encontrada %s", item.ID)
	}
	return nil
}

// List lista posiciones según filtros opcionales.
func (r *StockItemRepo) List(filter repository.StockFilter) ([]*entity.StockItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM stock_items WHERE 1=1`, stockItemColumns)
	var args []any
	pos := 1
	if filter.ShopID != "" {
		query += fmt.Sprintf(" AND shop_id = $%d", pos)
		args = append(args, filter.ShopID)
		pos++
	}
	if filter.ItemType != "" {
		query += fmt.Sprintf(" AND item_type = $%d", pos)
		args = append(args, string(filter.ItemType))
		pos++
	}
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.RawMaterialID != "" {
		query += fmt.Sprintf(" AND raw_material_id = $%d", pos)
		args = append(args, filter.RawMaterialID)
		pos++
	}
	if filter.LowStockOnly {
		query += " AND quantity <= min_stock_level"
	}
	query += " ORDER BY shop_id, item_type, product_id, raw_material_id"
	// Limit <= 0 significa sin paginación: la reconciliación recorre
	// todas las posiciones de una tienda en una sola consulta.
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var item entity.StockItem
	var itemType string
	var productID, rawMaterialID *string
	err := row.Scan(
		&item.ID, &item.ShopID, &itemType, &productID, &rawMaterialID,
		&item.Quantity, &item.ReservedQuantity, &item.MinStockLevel,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.ItemType = entity.ItemType(itemType)
	if productID != nil {
		item.ProductID = *productID
	}
	if rawMaterialID != nil {
		item.RawMaterialID = *rawMaterialID
	}
	return &item, nil
}

// nullable convierte string vacío a NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
