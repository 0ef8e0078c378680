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

// ReturnUseCase devoluciones de producto. El stock se reingresa en la tienda
// de la venta original, o en la bodega central si la devolución no referencia
// una venta.
type ReturnUseCase struct {
	txRunner        TxRunner
	productRepo     repository.ProductRepository
	saleRepo        repository.SaleRepository
	returnRepo      repository.ReturnRepository
	ledger          *ledger.Service
	warehouseShopID string
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	returnRepo repository.ReturnRepository,
	ledgerSvc *ledger.Service,
	warehouseShopID string,
) *ReturnUseCase {
	return &ReturnUseCase{
		txRunner:        txRunner,
		productRepo:     productRepo,
		saleRepo:        saleRepo,
		returnRepo:      returnRepo,
		ledger:          ledgerSvc,
		warehouseShopID: warehouseShopID,
	}
}

// Process registra la devolución y reingresa el stock (movimiento RETURN). Si
// la venta referenciada no existe o el motivo no es válido falla sin mutar.
func (uc *ReturnUseCase) Process(ctx context.Context, in dto.ReturnCreateRequest) (*dto.ReturnResponse, error) {
	if in.ReturnNumber == "" || in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	reason := entity.ReturnReason(in.Reason)
	if !reason.Valid() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	// Resolver la tienda acreditada antes de abrir la transacción
	shopID := uc.warehouseShopID
	if in.SaleID != "" {
		sale, err := uc.saleRepo.GetByID(in.SaleID)
		if err != nil {
			return nil, err
		}
		if sale == nil {
			return nil, domain.ErrNotFound
		}
		shopID = sale.ShopID
	}

	ret := &entity.Return{
		ID:           uuid.New().String(),
		ReturnNumber: in.ReturnNumber,
		SaleID:       in.SaleID,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		TotalAmount:  in.UnitPrice.Mul(in.Quantity),
		Reason:       reason,
		Notes:        in.Notes,
		ReturnDate:   in.ReturnDate,
		CreatedAt:    time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if existing, err := r.Returns.GetByNumber(in.ReturnNumber); err != nil {
			return err
		} else if existing != nil {
			return &domain.DuplicateKeyError{Document: "devolución", Key: in.ReturnNumber}
		}
		if err := r.Returns.Create(ret); err != nil {
			return err
		}
		_, err := uc.ledger.AdjustQuantity(r.Stock, r.Movements, ledger.AdjustInput{
			Key: entity.ItemKey{
				ShopID: shopID,
				Type:   entity.ItemTypeProduct,
				ItemID: in.ProductID,
			},
			Delta:  in.Quantity,
			Reason: entity.ReasonReturn,
			Ref:    &ledger.Reference{Type: "return", ID: ret.ID},
			Notes:  in.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto.NewReturnResponse(ret, shopID), nil
}

// Get obtiene una devolución.
func (uc *ReturnUseCase) Get(ctx context.Context, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.returnRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	shopID, err := uc.creditedShop(ret)
	if err != nil {
		return nil, err
	}
	return dto.NewReturnResponse(ret, shopID), nil
}

// List lista devoluciones paginadas.
func (uc *ReturnUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ReturnResponse, error) {
	returns, err := uc.returnRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReturnResponse, 0, len(returns))
	for _, ret := range returns {
		shopID, err := uc.creditedShop(ret)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewReturnResponse(ret, shopID))
	}
	return out, nil
}

func (uc *ReturnUseCase) creditedShop(ret *entity.Return) (string, error) {
	if ret.SaleID == "" {
		return uc.warehouseShopID, nil
	}
	sale, err := uc.saleRepo.GetByID(ret.SaleID)
	if err != nil {
		return "", err
	}
	if sale == nil {
		return uc.warehouseShopID, nil
	}
	return sale.ShopID, nil
}
