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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, transfer_number, from_shop_id, to_shop_id, status,
	transfer_date, received_date, notes, created_at, updated_at`

// Create persiste la cabecera. transfer_number tiene constraint único.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, transfer_number, from_shop_id, to_shop_id, status,
			transfer_date, received_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.TransferNumber, t.FromShopID, t.ToShopID, string(t.Status),
		t.TransferDate, t.ReceivedDate, t.Notes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateKeyError{Document: "traslado", Key: t.TransferNumber}
		}
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// CreateLine persiste un renglón de traslado.
func (r *TransferRepo) CreateLine(l *entity.TransferLine) error {
	query := `
		INSERT INTO transfer_lines (id, transfer_id, product_id, quantity, unit_cost, total_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.TransferID, l.ProductID, l.Quantity, l.UnitCost, l.TotalCost, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer line: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID. Retorna nil sin error si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := fmt.Sprintf(`SELECT %s FROM transfers WHERE id = $1`, transferColumns)
	return r.getOne(query, id)
}

// GetByNumber obtiene un traslado por su clave natural. Retorna nil sin error si no existe.
func (r *TransferRepo) GetByNumber(transferNumber string) (*entity.Transfer, error) {
	query := fmt.Sprintf(`SELECT %s FROM transfers WHERE transfer_number = $1`, transferColumns)
	return r.getOne(query, transferNumber)
}

func (r *TransferRepo) getOne(query string, arg any) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// ListLines lista los renglones de un traslado.
func (r *TransferRepo) ListLines(transferID string) ([]*entity.TransferLine, error) {
	query := `
		SELECT id, transfer_id, product_id, quantity, unit_cost, total_cost, created_at
		FROM transfer_lines WHERE transfer_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransferLine
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ProductID,
			&l.Quantity, &l.UnitCost, &l.TotalCost, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update persiste estado y received_date.
func (r *TransferRepo) Update(t *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET status = $2, received_date = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		t.ID, string(t.Status), t.ReceivedDate, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista traslados de la más reciente a la más antigua.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	query := fmt.Sprintf(`SELECT %s FROM transfers ORDER BY created_at DESC LIMIT $1 OFFSET $2`, transferColumns)
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var status string
	err := row.Scan(
		&t.ID, &t.TransferNumber, &t.FromShopID, &t.ToShopID, &status,
		&t.TransferDate, &t.ReceivedDate, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = entity.TransferStatus(status)
	return &t, nil
}
