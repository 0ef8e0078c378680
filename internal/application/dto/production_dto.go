package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/domain/entity"
)

// ProductionLineRequest producto a fabricar.
type ProductionLineRequest struct {
	ProductID       string          `json:"product_id"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
}

// ProductionConsumptionRequest materia prima a consumir. Si no se envía
// ninguna, se derivan de las reglas de consumo de tela del producto.
type ProductionConsumptionRequest struct {
	RawMaterialID      string          `json:"raw_material_id"`
	PlannedConsumption decimal.Decimal `json:"planned_consumption"`
}

// ProductionRunCreateRequest body para POST /api/production.
type ProductionRunCreateRequest struct {
	RunNumber       string                         `json:"run_number"`
	PlannedQuantity decimal.Decimal                `json:"planned_quantity"`
	LaborCost       decimal.Decimal                `json:"labor_cost"`
	OverheadCost    decimal.Decimal                `json:"overhead_cost"`
	StartDate       string                         `json:"start_date,omitempty"`
	Notes           string                         `json:"notes,omitempty"`
	Lines           []ProductionLineRequest        `json:"production_lines"`
	Consumptions    []ProductionConsumptionRequest `json:"production_consumptions,omitempty"`
}

// ActualLineQuantity cantidad real producida de un producto al completar.
type ActualLineQuantity struct {
	ProductID      string          `json:"product_id"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
}

// ActualConsumption consumo real de una materia prima al completar.
type ActualConsumption struct {
	RawMaterialID     string          `json:"raw_material_id"`
	ActualConsumption decimal.Decimal `json:"actual_consumption"`
}

// ProductionCompleteRequest body opcional para POST /api/production/:id/complete.
// Cantidades reales; las omitidas usan lo planeado.
type ProductionCompleteRequest struct {
	EndDate      string               `json:"end_date,omitempty"`
	Lines        []ActualLineQuantity `json:"production_lines,omitempty"`
	Consumptions []ActualConsumption  `json:"production_consumptions,omitempty"`
}

// ProductionLineResponse renglón de producción en respuestas.
type ProductionLineResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
	ActualQuantity  decimal.Decimal `json:"actual_quantity"`
}

// ProductionConsumptionResponse consumo en respuestas.
type ProductionConsumptionResponse struct {
	ID                 string          `json:"id"`
	RawMaterialID      string          `json:"raw_material_id"`
	PlannedConsumption decimal.Decimal `json:"planned_consumption"`
	ActualConsumption  decimal.Decimal `json:"actual_consumption"`
}

// ProductionRunResponse orden de producción con renglones y consumos.
type ProductionRunResponse struct {
	ID              string                          `json:"id"`
	RunNumber       string                          `json:"run_number"`
	Status          string                          `json:"status"`
	PlannedQuantity decimal.Decimal                 `json:"planned_quantity"`
	ActualQuantity  decimal.Decimal                 `json:"actual_quantity"`
	LaborCost       decimal.Decimal                 `json:"labor_cost"`
	OverheadCost    decimal.Decimal                 `json:"overhead_cost"`
	TotalCost       decimal.Decimal                 `json:"total_cost"`
	StartDate       string                          `json:"start_date,omitempty"`
	EndDate         string                          `json:"end_date,omitempty"`
	Notes           string                          `json:"notes,omitempty"`
	Lines           []ProductionLineResponse        `json:"production_lines"`
	Consumptions    []ProductionConsumptionResponse `json:"production_consumptions"`
}

// NewProductionRunResponse mapea la orden con sus renglones y consumos.
func NewProductionRunResponse(r *entity.ProductionRun, lines []*entity.ProductionLine, consumptions []*entity.ProductionConsumption) *ProductionRunResponse {
	resp := &ProductionRunResponse{
		ID:              r.ID,
		RunNumber:       r.RunNumber,
		Status:          string(r.Status),
		PlannedQuantity: r.PlannedQuantity,
		ActualQuantity:  r.ActualQuantity,
		LaborCost:       r.LaborCost,
		OverheadCost:    r.OverheadCost,
		TotalCost:       r.TotalCost,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Notes:           r.Notes,
		Lines:           make([]ProductionLineResponse, 0, len(lines)),
		Consumptions:    make([]ProductionConsumptionResponse, 0, len(consumptions)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, ProductionLineResponse{
			ID:              l.ID,
			ProductID:       l.ProductID,
			PlannedQuantity: l.PlannedQuantity,
			ActualQuantity:  l.ActualQuantity,
		})
	}
	for _, c := range consumptions {
		resp.Consumptions = append(resp.Consumptions, ProductionConsumptionResponse{
			ID:                 c.ID,
			RawMaterialID:      c.RawMaterialID,
			PlannedConsumption: c.PlannedConsumption,
			ActualConsumption:  c.ActualConsumption,
		})
	}
	return resp
}
