package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/application/ledger"
	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// ProductionUseCase flujo de producción en dos pasos: crear (PLANNED, sin
// efecto en el ledger) y completar (consume materia prima, ingresa producto
// terminado y calcula el costo total, todo en una transacción).
type ProductionUseCase struct {
	txRunner        TxRunner
	productRepo     repository.ProductRepository
	rawMaterialRepo repository.RawMaterialRepository
	productionRepo  repository.ProductionRepository
	ledger          *ledger.Service
	warehouseShopID string
}

// NewProductionUseCase construye el caso de uso. La producción consume e
// ingresa stock en la bodega central.
func NewProductionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	rawMaterialRepo repository.RawMaterialRepository,
	productionRepo repository.ProductionRepository,
	ledgerSvc *ledger.Service,
	warehouseShopID string,
) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner:        txRunner,
		productRepo:     productRepo,
		rawMaterialRepo: rawMaterialRepo,
		productionRepo:  productionRepo,
		ledger:          ledgerSvc,
		warehouseShopID: warehouseShopID,
	}
}

// Create persiste la orden en PLANNED con renglones y consumos. Si no se
// envían consumos se derivan de las reglas de consumo de tela
// (consumption_per_unit × cantidad planeada, una regla por materia prima).
func (uc *ProductionUseCase) Create(ctx context.Context, in dto.ProductionRunCreateRequest) (*dto.ProductionRunResponse, error) {
	if in.RunNumber == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.LaborCost.IsNegative() || in.OverheadCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.PlannedQuantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}
	for _, c := range in.Consumptions {
		if c.RawMaterialID == "" || !c.PlannedConsumption.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		material, err := uc.rawMaterialRepo.GetByID(c.RawMaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	run := &entity.ProductionRun{
		ID:              uuid.New().String(),
		RunNumber:       in.RunNumber,
		Status:          entity.ProductionStatusPlanned,
		PlannedQuantity: in.PlannedQuantity,
		LaborCost:       in.LaborCost,
		OverheadCost:    in.OverheadCost,
		StartDate:       in.StartDate,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	var lines []*entity.ProductionLine
	var consumptions []*entity.ProductionConsumption

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		if existing, err := r.Production.GetByNumber(in.RunNumber); err != nil {
			return err
		} else if existing != nil {
			return &domain.DuplicateKeyError{Document: "orden de producción", Key: in.RunNumber}
		}
		if err := r.Production.Create(run); err != nil {
			return err
		}
		for _, lineIn := range in.Lines {
			line := &entity.ProductionLine{
				ID:              uuid.New().String(),
				ProductionRunID: run.ID,
				ProductID:       lineIn.ProductID,
				PlannedQuantity: lineIn.PlannedQuantity,
				CreatedAt:       now,
			}
			if err := r.Production.CreateLine(line); err != nil {
				return err
			}
			lines = append(lines, line)
		}
		if len(in.Consumptions) > 0 {
			for _, cIn := range in.Consumptions {
				c := &entity.ProductionConsumption{
					ID:                 uuid.New().String(),
					ProductionRunID:    run.ID,
					RawMaterialID:      cIn.RawMaterialID,
					PlannedConsumption: cIn.PlannedConsumption,
					CreatedAt:          now,
				}
				if err := r.Production.CreateConsumption(c); err != nil {
					return err
				}
				consumptions = append(consumptions, c)
			}
			return nil
		}
		// Derivar consumos desde las reglas de tela de cada producto
		for _, lineIn := range in.Lines {
			rules, err := r.FabricRules.ListByProduct(lineIn.ProductID)
			if err != nil {
				return err
			}
			for _, rule := range rules {
				c := &entity.ProductionConsumption{
					ID:                 uuid.New().String(),
					ProductionRunID:    run.ID,
					RawMaterialID:      rule.RawMaterialID,
					PlannedConsumption: rule.ConsumptionPerUnit.Mul(lineIn.PlannedQuantity),
					CreatedAt:          now,
				}
				if err := r.Production.CreateConsumption(c); err != nil {
					return err
				}
				consumptions = append(consumptions, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewProductionRunResponse(run, lines, consumptions), nil
}

// Complete completa la orden: valida que siga en PLANNED, verifica
// disponibilidad de cada materia prima, consume, ingresa el producto
// terminado y calcula el costo total. Las cantidades reales son opcionales y
// por defecto se usan las planeadas.
func (uc *ProductionUseCase) Complete(ctx context.Context, runID string, in dto.ProductionCompleteRequest) (*dto.ProductionRunResponse, error) {
	actualByProduct := make(map[string]decimal.Decimal, len(in.Lines))
	for _, l := range in.Lines {
		if !l.ActualQuantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		actualByProduct[l.ProductID] = l.ActualQuantity
	}
	actualByMaterial := make(map[string]decimal.Decimal, len(in.Consumptions))
	for _, c := range in.Consumptions {
		if !c.ActualConsumption.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		actualByMaterial[c.RawMaterialID] = c.ActualConsumption
	}

	var run *entity.ProductionRun
	var lines []*entity.ProductionLine
	var consumptions []*entity.ProductionConsumption

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		run, err = r.Production.GetByID(runID)
		if err != nil {
			return err
		}
		if run == nil {
			return domain.ErrNotFound
		}
		if run.Status != entity.ProductionStatusPlanned {
			return &domain.InvalidStateError{
				Document: "orden de producción",
				ID:       run.RunNumber,
				Expected: string(entity.ProductionStatusPlanned),
				Actual:   string(run.Status),
			}
		}
		lines, err = r.Production.ListLines(run.ID)
		if err != nil {
			return err
		}
		consumptions, err = r.Production.ListConsumptions(run.ID)
		if err != nil {
			return err
		}

		// Resolver cantidades reales (por defecto las planeadas)
		for _, line := range lines {
			line.ActualQuantity = line.PlannedQuantity
			if actual, ok := actualByProduct[line.ProductID]; ok {
				line.ActualQuantity = actual
			}
		}
		for _, c := range consumptions {
			c.ActualConsumption = c.PlannedConsumption
			if actual, ok := actualByMaterial[c.RawMaterialID]; ok {
				c.ActualConsumption = actual
			}
		}

		// Pre-chequeo de disponibilidad de toda la materia prima
		for _, c := range consumptions {
			key := entity.ItemKey{
				ShopID: uc.warehouseShopID,
				Type:   entity.ItemTypeRawMaterial,
				ItemID: c.RawMaterialID,
			}
			ok, err := uc.ledger.CheckAvailability(r.Stock, key, c.ActualConsumption)
			if err != nil {
				return err
			}
			if !ok {
				available := decimal.Zero
				if item, err := uc.ledger.GetPosition(r.Stock, key); err != nil {
					return err
				} else if item != nil {
					available = item.Available()
				}
				return &domain.InsufficientStockError{
					ShopID:    uc.warehouseShopID,
					ItemType:  string(entity.ItemTypeRawMaterial),
					ItemID:    c.RawMaterialID,
					Available: available,
					Required:  c.ActualConsumption,
				}
			}
		}

		// Consumir materia prima acumulando su costo
		rawMaterialCost := decimal.Zero
		for _, c := range consumptions {
			_, err := uc.ledger.AdjustQuantity(r.Stock, r.Movements, ledger.AdjustInput{
				Key: entity.ItemKey{
					ShopID: uc.warehouseShopID,
					Type:   entity.ItemTypeRawMaterial,
					ItemID: c.RawMaterialID,
				},
				Delta:  c.ActualConsumption.Neg(),
				Reason: entity.ReasonProductionConsume,
				Ref:    &ledger.Reference{Type: "production_run", ID: run.ID},
			})
			if err != nil {
				return err
			}
			material, err := r.RawMaterials.GetByID(c.RawMaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return domain.ErrNotFound
			}
			rawMaterialCost = rawMaterialCost.Add(material.UnitPrice.Mul(c.ActualConsumption))
			if err := r.Production.UpdateConsumption(c); err != nil {
				return err
			}
		}

		// Ingresar el producto terminado (crea la posición si no existe)
		actualTotal := decimal.Zero
		for _, line := range lines {
			_, err := uc.ledger.AdjustQuantity(r.Stock, r.Movements, ledger.AdjustInput{
				Key: entity.ItemKey{
					ShopID: uc.warehouseShopID,
					Type:   entity.ItemTypeProduct,
					ItemID: line.ProductID,
				},
				Delta:  line.ActualQuantity,
				Reason: entity.ReasonProductionAdd,
				Ref:    &ledger.Reference{Type: "production_run", ID: run.ID},
			})
			if err != nil {
				return err
			}
			actualTotal = actualTotal.Add(line.ActualQuantity)
			if err := r.Production.UpdateLine(line); err != nil {
				return err
			}
		}

		run.TotalCost = rawMaterialCost.Add(run.LaborCost).Add(run.OverheadCost)
		run.ActualQuantity = actualTotal
		run.Status = entity.ProductionStatusCompleted
		run.EndDate = in.EndDate
		run.UpdatedAt = time.Now()
		return r.Production.Update(run)
	})
	if err != nil {
		return nil, err
	}
	return dto.NewProductionRunResponse(run, lines, consumptions), nil
}

// Get obtiene una orden con renglones y consumos.
func (uc *ProductionUseCase) Get(ctx context.Context, id string) (*dto.ProductionRunResponse, error) {
	run, err := uc.productionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.productionRepo.ListLines(id)
	if err != nil {
		return nil, err
	}
	consumptions, err := uc.productionRepo.ListConsumptions(id)
	if err != nil {
		return nil, err
	}
	return dto.NewProductionRunResponse(run, lines, consumptions), nil
}

// List lista órdenes de producción paginadas.
func (uc *ProductionUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProductionRunResponse, error) {
	runs, err := uc.productionRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductionRunResponse, 0, len(runs))
	for _, run := range runs {
		lines, err := uc.productionRepo.ListLines(run.ID)
		if err != nil {
			return nil, err
		}
		consumptions, err := uc.productionRepo.ListConsumptions(run.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewProductionRunResponse(run, lines, consumptions))
	}
	return out, nil
}
