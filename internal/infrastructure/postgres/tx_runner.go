package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/confeccion-api/internal/application/workflow"
)

var _ workflow.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los candados FOR UPDATE que tomen los repos viven hasta
// el final de la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(repos workflow.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := workflow.Repos{
		Stock:        NewStockItemRepository(tx),
		Movements:    NewStockMovementRepository(tx),
		Purchases:    NewPurchaseRepository(tx),
		Sales:        NewSaleRepository(tx),
		Production:   NewProductionRepository(tx),
		Transfers:    NewTransferRepository(tx),
		Returns:      NewReturnRepository(tx),
		Products:     NewProductRepository(tx),
		RawMaterials: NewRawMaterialRepository(tx),
		FabricRules:  NewFabricRuleRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
