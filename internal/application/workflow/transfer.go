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

// TransferUseCase traslados entre tiendas en dos fases: al crear se reserva
// el stock en la tienda origen sin mover cantidad; al recibir se confirma la
// reserva en origen (TRANSFER_OUT) y se ingresa en destino (TRANSFER_IN).
type TransferUseCase struct {
	txRunner     TxRunner
	shopRepo     repository.ShopRepository
	productRepo  repository.ProductRepository
	transferRepo repository.TransferRepository
	ledger       *ledger.Service
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
	transferRepo repository.TransferRepository,
	ledgerSvc *ledger.Service,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		shopRepo:     shopRepo,
		productRepo:  productRepo,
		transferRepo: transferRepo,
		ledger:       ledgerSvc,
	}
}

// Create crea el traslado en PENDING y reserva cada renglón en origen. La
// reserva aparta el stock sin registrar movimiento, así la cantidad sigue
// visible en origen pero no se puede vender.
func (uc *TransferUseCase) Create(ctx context.Context, in dto.TransferCreateRequest) (*dto.TransferResponse, error) {
	if in.TransferNumber == "" || in.FromShopID == "" || in.ToShopID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromShopID == in.ToShopID {
		return nil, domain.ErrInvalidInput
	}
	for _, shopID := range []string{in.FromShopID, in.ToShopID} {
		shop, err := uc.shopRepo.GetByID(shopID)
		if err != nil {
			return nil, err
		}
		if shop == nil {
			return nil, domain.ErrNotFound
		}
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
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

	now := time.Now()
	transfer := &entity.Transfer{
		ID:             uuid.New().String(),
		TransferNumber: in.TransferNumber,
		FromShopID:     in.FromShopID,
		ToShopID:       in.ToShopID,
		Status:         entity.TransferStatusPending,
		TransferDate:   in.TransferDate,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	var lines []*entity.TransferLine

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		if existing, err := r.Transfers.GetByNumber(in.TransferNumber); err != nil {
			return err
		} else if existing != nil {
			return &domain.DuplicateKeyError{Document: "traslado", Key: in.TransferNumber}
		}
		if err := r.Transfers.Create(transfer); err != nil {
			return err
		}
		for _, lineIn := range in.Lines {
			key := entity.ItemKey{
				ShopID: in.FromShopID,
				Type:   entity.ItemTypeProduct,
				ItemID: lineIn.ProductID,
			}
			if _, err := uc.ledger.Reserve(r.Stock, key, lineIn.Quantity); err != nil {
				return err
			}
			line := &entity.TransferLine{
				ID:         uuid.New().String(),
				TransferID: transfer.ID,
				ProductID:  lineIn.ProductID,
				Quantity:   lineIn.Quantity,
				UnitCost:   lineIn.UnitCost,
				TotalCost:  lineIn.UnitCost.Mul(lineIn.Quantity),
				CreatedAt:  now,
			}
			if err := r.Transfers.CreateLine(line); err != nil {
				return err
			}
			lines = append(lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewTransferResponse(transfer, lines), nil
}

// Receive confirma la recepción: el traslado debe seguir en PENDING. Por cada
// renglón se descuenta cantidad y reserva en origen en una sola toma del
// candado (TRANSFER_OUT) y se ingresa en destino (TRANSFER_IN), creando la
// posición destino si no existe.
func (uc *TransferUseCase) Receive(ctx context.Context, transferID string, receivedDate string) (*dto.TransferResponse, error) {
	var transfer *entity.Transfer
	var lines []*entity.TransferLine

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		transfer, err = r.Transfers.GetByID(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.Status != entity.TransferStatusPending {
			return &domain.InvalidStateError{
				Document: "traslado",
				ID:       transfer.TransferNumber,
				Expected: string(entity.TransferStatusPending),
				Actual:   string(transfer.Status),
			}
		}
		lines, err = r.Transfers.ListLines(transfer.ID)
		if err != nil {
			return err
		}
		ref := &ledger.Reference{Type: "transfer", ID: transfer.ID}
		for _, line := range lines {
			outKey := entity.ItemKey{
				ShopID: transfer.FromShopID,
				Type:   entity.ItemTypeProduct,
				ItemID: line.ProductID,
			}
			if _, err := uc.ledger.CommitReservation(r.Stock, r.Movements, outKey, line.Quantity, entity.ReasonTransferOut, ref); err != nil {
				return err
			}
			inKey := entity.ItemKey{
				ShopID: transfer.ToShopID,
				Type:   entity.ItemTypeProduct,
				ItemID: line.ProductID,
			}
			_, err := uc.ledger.AdjustQuantity(r.Stock, r.Movements, ledger.AdjustInput{
				Key:    inKey,
				Delta:  line.Quantity,
				Reason: entity.ReasonTransferIn,
				Ref:    ref,
			})
			if err != nil {
				return err
			}
		}
		transfer.Status = entity.TransferStatusReceived
		transfer.ReceivedDate = receivedDate
		transfer.UpdatedAt = time.Now()
		return r.Transfers.Update(transfer)
	})
	if err != nil {
		return nil, err
	}
	return dto.NewTransferResponse(transfer, lines), nil
}

// Get obtiene un traslado con sus renglones.
func (uc *TransferUseCase) Get(ctx context.Context, id string) (*dto.TransferResponse, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.transferRepo.ListLines(id)
	if err != nil {
		return nil, err
	}
	return dto.NewTransferResponse(transfer, lines), nil
}

// List lista traslados paginados.
func (uc *TransferUseCase) List(ctx context.Context, limit, offset int) ([]*dto.TransferResponse, error) {
	transfers, err := uc.transferRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		lines, err := uc.transferRepo.ListLines(t.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewTransferResponse(t, lines))
	}
	return out, nil
}
