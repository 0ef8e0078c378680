package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// RetentionUseCase poda movimientos más antiguos que la ventana de retención.
// Los movimientos nunca se mutan; la poda es el único borrado permitido y se
// ejecuta desde el job programado en main.
type RetentionUseCase struct {
	movRepo       repository.StockMovementRepository
	retentionDays int
}

// NewRetentionUseCase construye el caso de uso. retentionDays <= 0 desactiva la poda.
func NewRetentionUseCase(movRepo repository.StockMovementRepository, retentionDays int) *RetentionUseCase {
	return &RetentionUseCase{movRepo: movRepo, retentionDays: retentionDays}
}

// Enabled reporta si la poda está activa.
func (uc *RetentionUseCase) Enabled() bool {
	return uc.retentionDays > 0
}

// PruneOld elimina movimientos anteriores a la ventana y retorna cuántos borró.
func (uc *RetentionUseCase) PruneOld(ctx context.Context) (int64, error) {
	if !uc.Enabled() {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -uc.retentionDays)
	return uc.movRepo.DeleteOlderThan(cutoff)
}
