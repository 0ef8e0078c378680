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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sale_number, shop_id, customer_name, customer_phone,
	total_amount, discount_amount, final_amount, status, sale_date, notes, created_at, updated_at`

// Create persiste la cabecera de la venta. sale_number tiene constraint único.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sale_number, shop_id, customer_name, customer_phone,
			total_amount, discount_amount, final_amount, status, sale_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.SaleNumber, s.ShopID, s.CustomerName, s.CustomerPhone,
		s.TotalAmount, s.DiscountAmount, s.FinalAmount, string(s.Status),
		s.SaleDate, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateKeyError{Document: "venta", Key: s.SaleNumber}
		}
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateLine persiste un renglón de venta.
func (r *SaleRepo) CreateLine(l *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice, l.TotalPrice, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale line: %w", err)
	}
	return nil
}

// CreatePayment persiste un pago de la venta.
func (r *SaleRepo) CreatePayment(p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, sale_id, amount, payment_method, payment_date, reference, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SaleID, p.Amount, string(p.PaymentMethod),
		p.PaymentDate, p.Reference, p.Notes, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Retorna nil sin error si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales WHERE id = $1`, saleColumns)
	return r.getOne(query, id)
}

// GetByNumber obtiene una venta por su clave natural. Retorna nil sin error si no existe.
func (r *SaleRepo) GetByNumber(saleNumber string) (*entity.Sale, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales WHERE sale_number = $1`, saleColumns)
	return r.getOne(query, saleNumber)
}

func (r *SaleRepo) getOne(query string, arg any) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListLines lista los renglones de una venta.
func (r *SaleRepo) ListLines(saleID string) ([]*entity.SaleLine, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, total_price, created_at
		FROM sale_lines WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID,
			&l.Quantity, &l.UnitPrice, &l.TotalPrice, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListPayments lista los pagos de una venta.
func (r *SaleRepo) ListPayments(saleID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, sale_id, amount, payment_method, payment_date, reference, notes, created_at
		FROM payments WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var method string
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Amount, &method,
			&p.PaymentDate, &p.Reference, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.PaymentMethod = entity.PaymentMethod(method)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List lista ventas de una tienda (vacío = todas), de la más reciente a la más antigua.
func (r *SaleRepo) List(shopID string, limit, offset int) ([]*entity.Sale, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales`, saleColumns)
	var args []any
	pos := 1
	if shopID != "" {
		query += fmt.Sprintf(" WHERE shop_id = $%d", pos)
		args = append(args, shopID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var status string
	err := row.Scan(
		&s.ID, &s.SaleNumber, &s.ShopID, &s.CustomerName, &s.CustomerPhone,
		&s.TotalAmount, &s.DiscountAmount, &s.FinalAmount, &status,
		&s.SaleDate, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = entity.SaleStatus(status)
	return &s, nil
}
