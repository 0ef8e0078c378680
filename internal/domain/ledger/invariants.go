// Package ledger contiene las reglas puras del ledger de inventario
// (servicio de dominio, sin dependencias de infraestructura).
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/domain"
)

// DefaultMinStockLevel umbral mínimo asignado a posiciones creadas perezosamente.
var DefaultMinStockLevel = decimal.NewFromInt(10)

// Available cantidad disponible: en mano menos reservada.
func Available(quantity, reserved decimal.Decimal) decimal.Decimal {
	return quantity.Sub(reserved)
}

// CanDeduct reporta si la disponibilidad cubre la cantidad requerida.
func CanDeduct(quantity, reserved, required decimal.Decimal) bool {
	return Available(quantity, reserved).GreaterThanOrEqual(required)
}

// CheckInvariants verifica 0 <= reservada <= cantidad. Debe cumplirse después
// de toda mutación confirmada; su violación es señal de bug y aborta la transacción.
func CheckInvariants(quantity, reserved decimal.Decimal) error {
	if quantity.IsNegative() {
		return &domain.InvariantViolationError{
			Detail: fmt.Sprintf("cantidad negativa: %s", quantity.String()),
		}
	}
	if reserved.IsNegative() {
		return &domain.InvariantViolationError{
			Detail: fmt.Sprintf("reserva negativa: %s", reserved.String()),
		}
	}
	if reserved.GreaterThan(quantity) {
		return &domain.InvariantViolationError{
			Detail: fmt.Sprintf("reserva %s excede la cantidad %s", reserved.String(), quantity.String()),
		}
	}
	return nil
}
