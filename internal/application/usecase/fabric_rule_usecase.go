package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// FabricRuleUseCase reglas de consumo de tela por producto. Las usa la
// producción para derivar consumos planeados.
type FabricRuleUseCase struct {
	repo            repository.FabricRuleRepository
	productRepo     repository.ProductRepository
	rawMaterialRepo repository.RawMaterialRepository
}

// NewFabricRuleUseCase construye el caso de uso.
func NewFabricRuleUseCase(
	repo repository.FabricRuleRepository,
	productRepo repository.ProductRepository,
	rawMaterialRepo repository.RawMaterialRepository,
) *FabricRuleUseCase {
	return &FabricRuleUseCase{repo: repo, productRepo: productRepo, rawMaterialRepo: rawMaterialRepo}
}

// Create crea una regla de consumo validando producto y materia prima.
func (uc *FabricRuleUseCase) Create(in dto.FabricRuleRequest) (*dto.FabricRuleResponse, error) {
	if in.ProductID == "" || in.RawMaterialID == "" || !in.ConsumptionPerUnit.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	material, err := uc.rawMaterialRepo.GetByID(in.RawMaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	rule := &entity.FabricRule{
		ID:                 uuid.New().String(),
		ProductID:          in.ProductID,
		RawMaterialID:      in.RawMaterialID,
		ConsumptionPerUnit: in.ConsumptionPerUnit,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(rule); err != nil {
		return nil, err
	}
	return toFabricRuleResponse(rule), nil
}

// ListByProduct lista las reglas de un producto.
func (uc *FabricRuleUseCase) ListByProduct(productID string) ([]dto.FabricRuleResponse, error) {
	list, err := uc.repo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FabricRuleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toFabricRuleResponse(r))
	}
	return items, nil
}

// List lista reglas con paginación.
func (uc *FabricRuleUseCase) List(limit, offset int) ([]dto.FabricRuleResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FabricRuleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toFabricRuleResponse(r))
	}
	return items, nil
}

// Delete elimina una regla por ID.
func (uc *FabricRuleUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toFabricRuleResponse(r *entity.FabricRule) *dto.FabricRuleResponse {
	if r == nil {
		return nil
	}
	return &dto.FabricRuleResponse{
		ID:                 r.ID,
		ProductID:          r.ProductID,
		RawMaterialID:      r.RawMaterialID,
		ConsumptionPerUnit: r.ConsumptionPerUnit,
	}
}
