// Package workflow contiene los orquestadores de los cinco flujos que mutan
// el ledger: compra, venta, producción, traslado y devolución. Cada flujo es
// una sola transacción: o se confirman juntos documento, deltas del ledger y
// movimientos, o no se confirma nada.
package workflow

import (
	"context"

	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción de BD.
type Repos struct {
	Stock        repository.StockItemRepository
	Movements    repository.StockMovementRepository
	Purchases    repository.PurchaseRepository
	Sales        repository.SaleRepository
	Production   repository.ProductionRepository
	Transfers    repository.TransferRepository
	Returns      repository.ReturnRepository
	Products     repository.ProductRepository
	RawMaterials repository.RawMaterialRepository
	FabricRules  repository.FabricRuleRepository
}

// TxRunner ejecuta fn dentro de una transacción, pasando repos atados a esa tx.
// Commit si fn retorna nil; rollback completo si retorna error. Garantiza la
// atomicidad de los orquestadores.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
