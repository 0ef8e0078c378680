package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del historial append-only sobre PostgreSQL
// (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, shop_id, item_type, product_id, raw_material_id,
	quantity, reason, reference_type, reference_id, notes, created_at`

// Create persiste un movimiento. Los movimientos nunca se actualizan.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, shop_id, item_type, product_id, raw_material_id,
			quantity, reason, reference_type, reference_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ShopID, string(m.ItemType),
		nullable(m.ProductID), nullable(m.RawMaterialID),
		m.Quantity, string(m.Reason),
		nullable(m.ReferenceType), nullable(m.ReferenceID), nullable(m.Notes),
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List retorna movimientos del más reciente al más antiguo según filtros.
func (r *StockMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := fmt.Sprintf(`SELECT %s FROM stock_movements WHERE 1=1`, movementColumns)
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
	if filter.Reason != "" {
		query += fmt.Sprintf(" AND reason = $%d", pos)
		args = append(args, string(filter.Reason))
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += " ORDER BY created_at DESC"
	// Limit <= 0 significa sin paginación, igual que en StockItemRepo.List.
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SumByItem suma con signo de todos los movimientos de una posición.
func (r *StockMovementRepo) SumByItem(key entity.ItemKey) (decimal.Decimal, error) {
	itemCol := "product_id"
	if key.Type == entity.ItemTypeRawMaterial {
		itemCol = "raw_material_id"
	}
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE shop_id = $1 AND item_type = $2 AND %s = $3`, itemCol)
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, key.ShopID, string(key.Type), key.ItemID).Scan(&sum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

// SumsByShop sumas por artículo de una tienda (vacío = todas las tiendas).
func (r *StockMovementRepo) SumsByShop(shopID string) ([]repository.ItemMovementSum, error) {
	query := `
		SELECT shop_id, item_type, product_id, raw_material_id, COALESCE(SUM(quantity), 0)
		FROM stock_movements`
	var args []any
	if shopID != "" {
		query += " WHERE shop_id = $1"
		args = append(args, shopID)
	}
	query += " GROUP BY shop_id, item_type, product_id, raw_material_id"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("sums by shop: %w", err)
	}
	defer rows.Close()
	var list []repository.ItemMovementSum
	for rows.Next() {
		var s repository.ItemMovementSum
		var itemType string
		var productID, rawMaterialID *string
		if err := rows.Scan(&s.ShopID, &itemType, &productID, &rawMaterialID, &s.Sum); err != nil {
			return nil, fmt.Errorf("scan movement sum: %w", err)
		}
		s.ItemType = entity.ItemType(itemType)
		if productID != nil {
			s.ProductID = *productID
		}
		if rawMaterialID != nil {
			s.RawMaterialID = *rawMaterialID
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// DeleteOlderThan elimina movimientos anteriores al corte y retorna cuántos.
func (r *StockMovementRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old movements: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var itemType, reason string
	var productID, rawMaterialID, refType, refID, notes *string
	err := row.Scan(
		&m.ID, &m.ShopID, &itemType, &productID, &rawMaterialID,
		&m.Quantity, &reason, &refType, &refID, &notes, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.ItemType = entity.ItemType(itemType)
	m.Reason = entity.MovementReason(reason)
	if productID != nil {
		m.ProductID = *productID
	}
	if rawMaterialID != nil {
		m.RawMaterialID = *rawMaterialID
	}
	if refType != nil {
		m.ReferenceType = *refType
	}
	if refID != nil {
		m.ReferenceID = *refID
	}
	if notes != nil {
		m.Notes = *notes
	}
	return &m, nil
}
