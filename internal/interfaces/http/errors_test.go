package http

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/confeccion-api/internal/domain"
)

func TestStatusFromErr(t *testing.T) {
	casos := []struct {
		nombre string
		err    error
		status int
		code   string
	}{
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"duplicado", &domain.DuplicateKeyError{Document: "venta", Key: "V-001"}, fiber.StatusBadRequest, "DUPLICATE"},
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"estado inválido", &domain.InvalidStateError{Document: "traslado", ID: "TR-1", Expected: "pending", Actual: "received"}, fiber.StatusBadRequest, "INVALID_STATE"},
		{"stock insuficiente", &domain.InsufficientStockError{Available: decimal.Zero, Required: decimal.NewFromInt(3)}, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"no autorizado", domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"prohibido", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{"invariante violada", &domain.InvariantViolationError{Detail: "reserva excede cantidad"}, fiber.StatusInternalServerError, "INTERNAL"},
		{"error genérico", assert.AnError, fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			status, code := statusFromErr(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}
