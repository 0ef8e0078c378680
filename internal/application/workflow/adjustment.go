package workflow

import (
	"context"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/application/ledger"
	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// AdjustmentUseCase ajustes manuales de stock (conteos físicos, mermas).
// Registra un movimiento ADJUSTMENT con el delta firmado.
type AdjustmentUseCase struct {
	txRunner        TxRunner
	shopRepo        repository.ShopRepository
	productRepo     repository.ProductRepository
	rawMaterialRepo repository.RawMaterialRepository
	ledger          *ledger.Service
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
	rawMaterialRepo repository.RawMaterialRepository,
	ledgerSvc *ledger.Service,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:        txRunner,
		shopRepo:        shopRepo,
		productRepo:     productRepo,
		rawMaterialRepo: rawMaterialRepo,
		ledger:          ledgerSvc,
	}
}

// Adjust aplica el delta sobre la posición. Un delta negativo que deje la
// cantidad bajo cero o bajo lo reservado falla sin mutar.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, in dto.StockAdjustmentRequest) (*dto.StockItemResponse, error) {
	itemType := entity.ItemType(in.ItemType)
	if !itemType.Valid() || in.ShopID == "" || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	shop, err := uc.shopRepo.GetByID(in.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}

	var itemID string
	switch itemType {
	case entity.ItemTypeProduct:
		if in.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		itemID = in.ProductID
	case entity.ItemTypeRawMaterial:
		if in.RawMaterialID == "" {
			return nil, domain.ErrInvalidInput
		}
		material, err := uc.rawMaterialRepo.GetByID(in.RawMaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
		itemID = in.RawMaterialID
	}

	var item *entity.StockItem
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		item, err = uc.ledger.AdjustQuantity(r.Stock, r.Movements, ledger.AdjustInput{
			Key: entity.ItemKey{
				ShopID: in.ShopID,
				Type:   itemType,
				ItemID: itemID,
			},
			Delta:  in.Quantity,
			Reason: entity.ReasonAdjustment,
			Notes:  in.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewStockItemResponse(item)
	return &resp, nil
}
