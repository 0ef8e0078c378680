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

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo implementación de RawMaterialRepository sobre PostgreSQL.
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const rawMaterialColumns = `id, sku, name, description, unit, unit_price, is_active, created_at, updated_at`

// Create persiste una materia prima. El SKU tiene constraint único.
func (r *RawMaterialRepo) Create(m *entity.RawMaterial) error {
	query := fmt.Sprintf(`
		INSERT INTO raw_materials (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, rawMaterialColumns)
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.SKU, m.Name, m.Description, m.Unit,
		m.UnitPrice, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateKeyError{Document: "materia prima", Key: m.SKU}
		}
		return fmt.Errorf("create raw material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID. Retorna nil sin error si no existe.
func (r *RawMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	query := fmt.Sprintf(`SELECT %s FROM raw_materials WHERE id = $1`, rawMaterialColumns)
	return r.getOne(query, id)
}

// GetBySKU obtiene una materia prima por SKU. Retorna nil sin error si no existe.
func (r *RawMaterialRepo) GetBySKU(sku string) (*entity.RawMaterial, error) {
	query := fmt.Sprintf(`SELECT %s FROM raw_materials WHERE sku = $1`, rawMaterialColumns)
	return r.getOne(query, sku)
}

func (r *RawMaterialRepo) getOne(query string, arg any) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.SKU, &m.Name, &m.Description, &m.Unit,
		&m.UnitPrice, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return &m, nil
}

// List lista materias primas con paginación.
func (r *RawMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) {
	query := fmt.Sprintf(`SELECT %s FROM raw_materials ORDER BY sku LIMIT $1 OFFSET $2`, rawMaterialColumns)
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(&m.ID, &m.SKU, &m.Name, &m.Description, &m.Unit,
			&m.UnitPrice, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza una materia prima.
func (r *RawMaterialRepo) Update(m *entity.RawMaterial) error {
	query := `
		UPDATE raw_materials
		SET name = $2, description = $3, unit = $4, unit_price = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Description, m.Unit, m.UnitPrice, m.IsActive, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update raw material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
