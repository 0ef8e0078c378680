package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

var _ repository.FabricRuleRepository = (*FabricRuleRepo)(nil)

// FabricRuleRepo implementación de FabricRuleRepository sobre PostgreSQL.
type FabricRuleRepo struct {
	q Querier
}

// NewFabricRuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFabricRuleRepository(q Querier) *FabricRuleRepo {
	return &FabricRuleRepo{q: q}
}

const fabricRuleColumns = `id, product_id, raw_material_id, consumption_per_unit, created_at, updated_at`

// Create persiste una regla. Hay constraint único por (producto, materia prima).
func (r *FabricRuleRepo) Create(rule *entity.FabricRule) error {
	query := fmt.Sprintf(`
		INSERT INTO fabric_rules (%s)
		VALUES ($1, $2, $3, $4, $5, $6)`, fabricRuleColumns)
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.ProductID, rule.RawMaterialID,
		rule.ConsumptionPerUnit, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateKeyError{
				Document: "regla de consumo",
				Key:      rule.ProductID + "/" + rule.RawMaterialID,
			}
		}
		return fmt.Errorf("create fabric rule: %w", err)
	}
	return nil
}

// ListByProduct lista las reglas de un producto.
func (r *FabricRuleRepo) ListByProduct(productID string) ([]*entity.FabricRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM fabric_rules WHERE product_id = $1 ORDER BY raw_material_id`, fabricRuleColumns)
	return r.list(query, productID)
}

// List lista reglas con paginación.
func (r *FabricRuleRepo) List(limit, offset int) ([]*entity.FabricRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM fabric_rules ORDER BY product_id, raw_material_id LIMIT $1 OFFSET $2`, fabricRuleColumns)
	return r.list(query, limit, offset)
}

func (r *FabricRuleRepo) list(query string, args ...any) ([]*entity.FabricRule, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fabric rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.FabricRule
	for rows.Next() {
		var rule entity.FabricRule
		if err := rows.Scan(&rule.ID, &rule.ProductID, &rule.RawMaterialID,
			&rule.ConsumptionPerUnit, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan fabric rule: %w", err)
		}
		list = append(list, &rule)
	}
	return list, rows.Err()
}

// Delete elimina una regla por ID.
func (r *FabricRuleRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM fabric_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fabric rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
