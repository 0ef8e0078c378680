package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// RawMaterialUseCase casos de uso CRUD para materias primas.
type RawMaterialUseCase struct {
	repo repository.RawMaterialRepository
}

// NewRawMaterialUseCase construye el caso de uso.
func NewRawMaterialUseCase(repo repository.RawMaterialRepository) *RawMaterialUseCase {
	return &RawMaterialUseCase{repo: repo}
}

// Create crea una materia prima. El SKU debe ser único.
func (uc *RawMaterialUseCase) Create(in dto.RawMaterialRequest) (*dto.RawMaterialResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.DuplicateKeyError{Document: "materia prima", Key: in.SKU}
	}
	now := time.Now()
	material := &entity.RawMaterial{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Unit:        in.Unit,
		UnitPrice:   in.UnitPrice,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toRawMaterialResponse(material), nil
}

// GetByID obtiene una materia prima por ID.
func (uc *RawMaterialUseCase) GetByID(id string) (*dto.RawMaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toRawMaterialResponse(material), nil
}

// Update actualiza una materia prima.
func (uc *RawMaterialUseCase) Update(id string, in dto.RawMaterialRequest) (*dto.RawMaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		material.Name = in.Name
	}
	if in.Unit != "" {
		material.Unit = in.Unit
	}
	material.Description = in.Description
	material.UnitPrice = in.UnitPrice
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return toRawMaterialResponse(material), nil
}

// Delete desactiva una materia prima (borrado lógico via is_active).
func (uc *RawMaterialUseCase) Delete(id string) error {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	material.IsActive = false
	material.UpdatedAt = time.Now()
	return uc.repo.Update(material)
}

// List lista materias primas con paginación.
func (uc *RawMaterialUseCase) List(limit, offset int) ([]dto.RawMaterialResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RawMaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toRawMaterialResponse(m))
	}
	return items, nil
}

func toRawMaterialResponse(m *entity.RawMaterial) *dto.RawMaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.RawMaterialResponse{
		ID:          m.ID,
		SKU:         m.SKU,
		Name:        m.Name,
		Description: m.Description,
		Unit:        m.Unit,
		UnitPrice:   m.UnitPrice,
		IsActive:    m.IsActive,
	}
}
