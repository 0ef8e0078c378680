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

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo implementación de ProductionRepository sobre PostgreSQL.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

const productionColumns = `id, run_number, status, planned_quantity, actual_quantity,
	labor_cost, overhead_cost, total_cost, start_date, end_date, notes, created_at, updated_at`

// Create persiste la cabecera de la orden. run_number tiene constraint único.
func (r *ProductionRepo) Create(run *entity.ProductionRun) error {
	query := `
		INSERT INTO production_runs (id, run_number, status, planned_quantity, actual_quantity,
			labor_cost, overhead_cost, total_cost, start_date, end_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		run.ID, run.RunNumber, string(run.Status), run.PlannedQuantity, run.ActualQuantity,
		run.LaborCost, run.OverheadCost, run.TotalCost,
		run.StartDate, run.EndDate, run.Notes, run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateKeyError{Document: "orden de producción", Key: run.RunNumber}
		}
		return fmt.Errorf("create production run: %w", err)
	}
	return nil
}

// CreateLine persiste un renglón de producción.
func (r *ProductionRepo) CreateLine(l *entity.ProductionLine) error {
	query := `
		INSERT INTO production_lines (id, production_run_id, product_id, planned_quantity, actual_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.ProductionRunID, l.ProductID, l.PlannedQuantity, l.ActualQuantity, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create production line: %w", err)
	}
	return nil
}

// CreateConsumption persiste un consumo planeado.
func (r *ProductionRepo) CreateConsumption(c *entity.ProductionConsumption) error {
	query := `
		INSERT INTO production_consumptions (id, production_run_id, raw_material_id, planned_consumption, actual_consumption, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ProductionRunID, c.RawMaterialID, c.PlannedConsumption, c.ActualConsumption, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create production consumption: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Retorna nil sin error si no existe.
func (r *ProductionRepo) GetByID(id string) (*entity.ProductionRun, error) {
	query := fmt.Sprintf(`SELECT %s FROM production_runs WHERE id = $1`, productionColumns)
	return r.getOne(query, id)
}

// GetByNumber obtiene una orden por su clave natural. Retorna nil sin error si no existe.
func (r *ProductionRepo) GetByNumber(runNumber string) (*entity.ProductionRun, error) {
	query := fmt.Sprintf(`SELECT %s FROM production_runs WHERE run_number = $1`, productionColumns)
	return r.getOne(query, runNumber)
}

func (r *ProductionRepo) getOne(query string, arg any) (*entity.ProductionRun, error) {
	run, err := scanProductionRun(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production run: %w", err)
	}
	return run, nil
}

// ListLines lista los renglones de una orden.
func (r *ProductionRepo) ListLines(runID string) ([]*entity.ProductionLine, error) {
	query := `
		SELECT id, production_run_id, product_id, planned_quantity, actual_quantity, created_at
		FROM production_lines WHERE production_run_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, runID)
	if err != nil {
		return nil, fmt.Errorf("list production lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionLine
	for rows.Next() {
		var l entity.ProductionLine
		if err := rows.Scan(&l.ID, &l.ProductionRunID, &l.ProductID,
			&l.PlannedQuantity, &l.ActualQuantity, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListConsumptions lista los consumos de una orden.
func (r *ProductionRepo) ListConsumptions(runID string) ([]*entity.ProductionConsumption, error) {
	query := `
		SELECT id, production_run_id, raw_material_id, planned_consumption, actual_consumption, created_at
		FROM production_consumptions WHERE production_run_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, runID)
	if err != nil {
		return nil, fmt.Errorf("list production consumptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionConsumption
	for rows.Next() {
		var c entity.ProductionConsumption
		if err := rows.Scan(&c.ID, &c.ProductionRunID, &c.RawMaterialID,
			&c.PlannedConsumption, &c.ActualConsumption, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production consumption: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update persiste estado, actual_quantity, total_cost y end_date.
func (r *ProductionRepo) Update(run *entity.ProductionRun) error {
	query := `
		UPDATE production_runs
		SET status = $2, actual_quantity = $3, total_cost = $4, end_date = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		run.ID, string(run.Status), run.ActualQuantity, run.TotalCost, run.EndDate, run.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLine persiste la cantidad real producida.
func (r *ProductionRepo) UpdateLine(l *entity.ProductionLine) error {
	query := `UPDATE production_lines SET actual_quantity = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, l.ID, l.ActualQuantity)
	if err != nil {
		return fmt.Errorf("update production line: %w", err)
	}
	return nil
}

// UpdateConsumption persiste el consumo real.
func (r *ProductionRepo) UpdateConsumption(c *entity.ProductionConsumption) error {
	query := `UPDATE production_consumptions SET actual_consumption = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.ActualConsumption)
	if err != nil {
		return fmt.Errorf("update production consumption: %w", err)
	}
	return nil
}

// List lista órdenes de la más reciente a la más antigua.
func (r *ProductionRepo) List(limit, offset int) ([]*entity.ProductionRun, error) {
	query := fmt.Sprintf(`SELECT %s FROM production_runs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, productionColumns)
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production runs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionRun
	for rows.Next() {
		run, err := scanProductionRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production run: %w", err)
		}
		list = append(list, run)
	}
	return list, rows.Err()
}

func scanProductionRun(row pgx.Row) (*entity.ProductionRun, error) {
	var run entity.ProductionRun
	var status string
	err := row.Scan(
		&run.ID, &run.RunNumber, &status, &run.PlannedQuantity, &run.ActualQuantity,
		&run.LaborCost, &run.OverheadCost, &run.TotalCost,
		&run.StartDate, &run.EndDate, &run.Notes, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Status = entity.ProductionStatus(status)
	return &run, nil
}
