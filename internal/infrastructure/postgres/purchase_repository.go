package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, order_id, supplier_name, supplier_invoice, total_amount,
	status, purchase_date, received_date, notes, created_at, updated_at`

// Create persiste la cabecera de la compra. order_id tiene constraint único.
func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, order_id, supplier_name, supplier_invoice, total_amount,
			status, purchase_date, received_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.OrderID, p.SupplierName, p.SupplierInvoice, p.TotalAmount,
		string(p.Status), p.PurchaseDate, p.ReceivedDate, p.Notes,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateKeyError{Document: "orden de compra", Key: p.OrderID}
		}
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// CreateLine persiste un renglón de compra.
func (r *PurchaseRepo) CreateLine(l *entity.PurchaseLine) error {
	query := `
		INSERT INTO purchase_lines (id, purchase_id, raw_material_id, quantity, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.PurchaseID, l.RawMaterialID, l.Quantity, l.UnitPrice, l.TotalPrice, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create purchase line: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID. Retorna nil sin error si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchases WHERE id = $1`, purchaseColumns)
	return r.getOne(query, id)
}

// GetByOrderID obtiene una compra por su clave natural. Retorna nil sin error si no existe.
func (r *PurchaseRepo) GetByOrderID(orderID string) (*entity.Purchase, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchases WHERE order_id = $1`, purchaseColumns)
	return r.getOne(query, orderID)
}

func (r *PurchaseRepo) getOne(query string, arg any) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

// ListLines lista los renglones de una compra.
func (r *PurchaseRepo) ListLines(purchaseID string) ([]*entity.PurchaseLine, error) {
	query := `
		SELECT id, purchase_id, raw_material_id, quantity, unit_price, total_price, created_at
		FROM purchase_lines WHERE purchase_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseLine
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.RawMaterialID,
			&l.Quantity, &l.UnitPrice, &l.TotalPrice, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// List lista compras ordenadas de la más reciente a la más antigua.
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchases ORDER BY created_at DESC LIMIT $1 OFFSET $2`, purchaseColumns)
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	var status string
	err := row.Scan(
		&p.ID, &p.OrderID, &p.SupplierName, &p.SupplierInvoice, &p.TotalAmount,
		&status, &p.PurchaseDate, &p.ReceivedDate, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = entity.PurchaseStatus(status)
	return &p, nil
}
