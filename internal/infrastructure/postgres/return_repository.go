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

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, return_number, sale_id, product_id, quantity,
	unit_price, total_amount, reason, notes, return_date, created_at`

// Create persiste una devolución. return_number tiene constraint único.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	query := `
		INSERT INTO returns (id, return_number, sale_id, product_id, quantity,
			unit_price, total_amount, reason, notes, return_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.ReturnNumber, nullable(ret.SaleID), ret.ProductID, ret.Quantity,
		ret.UnitPrice, ret.TotalAmount, string(ret.Reason), ret.Notes,
		ret.ReturnDate, ret.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateKeyError{Document: "devolución", Key: ret.ReturnNumber}
		}
		return fmt.Errorf("create return: %w", err)
	}
	return nil
}

// GetByID obtiene una devolución por ID. Retorna nil sin error si no existe.
func (r *ReturnRepo) GetByID(id string) (*entity.Return, error) {
	query := fmt.Sprintf(`SELECT %s FROM returns WHERE id = $1`, returnColumns)
	return r.getOne(query, id)
}

// GetByNumber obtiene una devolución por su clave natural. Retorna nil sin error si no existe.
func (r *ReturnRepo) GetByNumber(returnNumber string) (*entity.Return, error) {
	query := fmt.Sprintf(`SELECT %s FROM returns WHERE return_number = $1`, returnColumns)
	return r.getOne(query, returnNumber)
}

func (r *ReturnRepo) getOne(query string, arg any) (*entity.Return, error) {
	ret, err := scanReturn(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return ret, nil
}

// List lista devoluciones de la más reciente a la más antigua.
func (r *ReturnRepo) List(limit, offset int) ([]*entity.Return, error) {
	query := fmt.Sprintf(`SELECT %s FROM returns ORDER BY created_at DESC LIMIT $1 OFFSET $2`, returnColumns)
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.Return
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, ret)
	}
	return list, rows.Err()
}

func scanReturn(row pgx.Row) (*entity.Return, error) {
	var ret entity.Return
	var reason string
	var saleID *string
	err := row.Scan(
		&ret.ID, &ret.ReturnNumber, &saleID, &ret.ProductID, &ret.Quantity,
		&ret.UnitPrice, &ret.TotalAmount, &reason, &ret.Notes,
		&ret.ReturnDate, &ret.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	ret.Reason = entity.ReturnReason(reason)
	if saleID != nil {
		ret.SaleID = *saleID
	}
	return &ret, nil
}
