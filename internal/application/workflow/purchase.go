package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/application/dto"
	"github.com/jhoicas/confeccion-api/internal/application/ledger"
	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// PurchaseUseCase flujo de compra de materias primas. El flujo observado
// recibe de inmediato: cabecera en RECEIVED e ingreso al ledger en la misma
// transacción. Siempre es entrada, no hay insuficiencia posible.
type PurchaseUseCase struct {
	txRunner        TxRunner
	rawMaterialRepo repository.RawMaterialRepository
	purchaseRepo    repository.PurchaseRepository
	ledger          *ledger.Service
	warehouseShopID string
}

// NewPurchaseUseCase construye el caso de uso. warehouseShopID es la bodega
// central que recibe las compras cuando el request no indica tienda.
func NewPurchaseUseCase(
	txRunner TxRunner,
	rawMaterialRepo repository.RawMaterialRepository,
	purchaseRepo repository.PurchaseRepository,
	ledgerSvc *ledger.Service,
	warehouseShopID string,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:        txRunner,
		rawMaterialRepo: rawMaterialRepo,
		purchaseRepo:    purchaseRepo,
		ledger:          ledgerSvc,
		warehouseShopID: warehouseShopID,
	}
}

// Receive crea la compra, sus renglones y el ingreso de cada materia prima
// al ledger, todo en una transacción.
func (uc *PurchaseUseCase) Receive(ctx context.Context, in dto.PurchaseCreateRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierName == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	shopID := in.ShopID
	if shopID == "" {
		shopID = uc.warehouseShopID
	}
	if shopID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Validar materias primas fuera de la tx (solo lectura)
	total := decimal.Zero
	for _, line := range in.Lines {
		if line.RawMaterialID == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		material, err := uc.rawMaterialRepo.GetByID(line.RawMaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
		total = total.Add(line.Quantity.Mul(line.UnitPrice))
	}

	now := time.Now()
	id := uuid.New().String()
	orderID := in.OrderID
	if orderID == "" {
		// Derivado del UUID de la compra: dos compras en el mismo segundo
		// no deben colisionar
		orderID = fmt.Sprintf("PO-%s", id[:8])
	}
	purchase := &entity.Purchase{
		ID:              id,
		OrderID:         orderID,
		SupplierName:    in.SupplierName,
		SupplierInvoice: in.SupplierInvoice,
		TotalAmount:     total,
		Status:          entity.PurchaseStatusReceived,
		PurchaseDate:    in.PurchaseDate,
		ReceivedDate:    in.PurchaseDate,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	var lines []*entity.PurchaseLine

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		if existing, err := r.Purchases.GetByOrderID(orderID); err != nil {
			return err
		} else if existing != nil {
			return &domain.DuplicateKeyError{Document: "compra", Key: orderID}
		}
		if err := r.Purchases.Create(purchase); err != nil {
			return err
		}
		for _, lineIn := range in.Lines {
			line := &entity.PurchaseLine{
				ID:            uuid.New().String(),
				PurchaseID:    purchase.ID,
				RawMaterialID: lineIn.RawMaterialID,
				Quantity:      lineIn.Quantity,
				UnitPrice:     lineIn.UnitPrice,
				TotalPrice:    lineIn.Quantity.Mul(lineIn.UnitPrice),
				CreatedAt:     now,
			}
			if err := r.Purchases.CreateLine(line); err != nil {
				return err
			}
			lines = append(lines, line)

			_, err := uc.ledger.AdjustQuantity(r.Stock, r.Movements, ledger.AdjustInput{
				Key: entity.ItemKey{
					ShopID: shopID,
					Type:   entity.ItemTypeRawMaterial,
					ItemID: lineIn.RawMaterialID,
				},
				Delta:  lineIn.Quantity,
				Reason: entity.ReasonPurchase,
				Ref:    &ledger.Reference{Type: "purchase", ID: purchase.ID},
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPurchaseResponse(purchase, lines), nil
}

// Get obtiene una compra con sus renglones.
func (uc *PurchaseUseCase) Get(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.purchaseRepo.ListLines(id)
	if err != nil {
		return nil, err
	}
	return dto.NewPurchaseResponse(purchase, lines), nil
}

// List lista compras paginadas (más recientes primero).
func (uc *PurchaseUseCase) List(ctx context.Context, limit, offset int) ([]*dto.PurchaseResponse, error) {
	purchases, err := uc.purchaseRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		lines, err := uc.purchaseRepo.ListLines(p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewPurchaseResponse(p, lines))
	}
	return out, nil
}
