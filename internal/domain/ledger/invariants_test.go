package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/ledger"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestAvailable(t *testing.T) {
	assert.True(t, ledger.Available(d("10"), d("3")).Equal(d("7")))
	assert.True(t, ledger.Available(d("5.500"), d("0")).Equal(d("5.5")))
	// Disponible puede ser cero cuando todo está reservado
	assert.True(t, ledger.Available(d("4"), d("4")).IsZero())
}

func TestCanDeduct(t *testing.T) {
	// Exactamente la disponibilidad: permitido
	assert.True(t, ledger.CanDeduct(d("10"), d("3"), d("7")))
	// Un milésimo por encima: rechazado
	assert.False(t, ledger.CanDeduct(d("10"), d("3"), d("7.001")))
	// La reserva no es deducible aunque la cantidad en mano alcance
	assert.False(t, ledger.CanDeduct(d("10"), d("10"), d("1")))
	assert.True(t, ledger.CanDeduct(d("2"), d("0"), d("0")))
}

func TestCheckInvariants(t *testing.T) {
	require.NoError(t, ledger.CheckInvariants(d("10"), d("0")))
	require.NoError(t, ledger.CheckInvariants(d("10"), d("10")))
	require.NoError(t, ledger.CheckInvariants(d("0"), d("0")))

	casos := []struct {
		nombre    string
		cantidad  string
		reservada string
	}{
		{"cantidad negativa", "-0.001", "0"},
		{"reserva negativa", "5", "-1"},
		{"reserva excede cantidad", "5", "5.001"},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			err := ledger.CheckInvariants(d(tc.cantidad), d(tc.reservada))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvariant))

			var viol *domain.InvariantViolationError
			assert.True(t, errors.As(err, &viol))
		})
	}
}
