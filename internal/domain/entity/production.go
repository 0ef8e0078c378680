package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionStatus estado de una orden de producción.
type ProductionStatus string

const (
	ProductionStatusPlanned   ProductionStatus = "planned"
	ProductionStatusCompleted ProductionStatus = "completed"
	ProductionStatusCancelled ProductionStatus = "cancelled"
)

// ProductionRun orden de producción: consume materia prima y produce prendas.
// Se crea en PLANNED sin efecto en el ledger; al completarla se consumen los
// materiales y se ingresan los productos en una sola transacción.
type ProductionRun struct {
	ID              string
	RunNumber       string // natural key
	Status          ProductionStatus
	PlannedQuantity decimal.Decimal
	ActualQuantity  decimal.Decimal // por defecto igual a la planeada
	LaborCost       decimal.Decimal
	OverheadCost    decimal.Decimal
	TotalCost       decimal.Decimal // materiales + mano de obra + indirectos
	StartDate       string
	EndDate         string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductionLine producto a fabricar en una orden de producción.
type ProductionLine struct {
	ID              string
	ProductionRunID string
	ProductID       string
	PlannedQuantity decimal.Decimal
	ActualQuantity  decimal.Decimal
	CreatedAt       time.Time
}

// ProductionConsumption materia prima a consumir en una orden de producción.
type ProductionConsumption struct {
	ID                 string
	ProductionRunID    string
	RawMaterialID      string
	PlannedConsumption decimal.Decimal
	ActualConsumption  decimal.Decimal
	CreatedAt          time.Time
}
