package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidState      = errors.New("estado del documento inválido")
	ErrInvariant         = errors.New("invariante del ledger violada")
)

// InsufficientStockError falta de disponibilidad para una salida del ledger.
// Lleva el artículo deficiente y las cantidades para diagnóstico del caller.
type InsufficientStockError struct {
	ShopID    string
	ItemType  string
	ItemID    string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s %s en tienda %s: disponible %s, requerido %s",
		e.ItemType, e.ItemID, e.ShopID, e.Available.String(), e.Required.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidStateError un flujo fue invocado sobre un documento en estado no esperado
// (ej: completar una producción ya completada, recibir un traslado no pendiente).
type InvalidStateError struct {
	Document string
	ID       string
	Expected string
	Actual   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s no está en estado %s (actual: %s)", e.Document, e.ID, e.Expected, e.Actual)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// DuplicateKeyError la clave natural (número de venta, traslado, etc.) ya existe.
type DuplicateKeyError struct {
	Document string
	Key      string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s con número %s ya existe", e.Document, e.Key)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicate }

// InvariantViolationError fallo de una verificación defensiva interna
// (ej: reservada > cantidad). Señal de bug, no un resultado de negocio:
// siempre aborta la transacción.
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return "invariante violada: " + e.Detail
}

func (e *InvariantViolationError) Unwrap() error { return ErrInvariant }
