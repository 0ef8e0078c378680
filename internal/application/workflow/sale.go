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

// SaleUseCase flujo de venta. Fase de pre-chequeo: toda la disponibilidad se
// verifica antes de cualquier mutación (todo-o-nada también en la validación);
// luego cabecera, renglones, deducciones del ledger y pagos en una transacción.
type SaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
	saleRepo    repository.SaleRepository
	ledger      *ledger.Service
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	shopRepo repository.ShopRepository,
	saleRepo repository.SaleRepository,
	ledgerSvc *ledger.Service,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		shopRepo:    shopRepo,
		saleRepo:    saleRepo,
		ledger:      ledgerSvc,
	}
}

// Commit confirma la venta. El número duplicado se rechaza antes de cualquier
// trabajo del ledger; la insuficiencia de stock se reporta como conflicto.
func (uc *SaleUseCase) Commit(ctx context.Context, in dto.SaleCreateRequest) (*dto.SaleResponse, error) {
	if in.SaleNumber == "" || in.ShopID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, p := range in.Payments {
		if !entity.PaymentMethod(p.PaymentMethod).Valid() {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validaciones de referencia fuera de la tx (solo lectura)
	shop, err := uc.shopRepo.GetByID(in.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	total := decimal.Zero
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		total = total.Add(line.Quantity.Mul(line.UnitPrice))
	}
	final := total.Sub(in.DiscountAmount)

	now := time.Now()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		SaleNumber:     in.SaleNumber,
		ShopID:         in.ShopID,
		CustomerName:   in.CustomerName,
		CustomerPhone:  in.CustomerPhone,
		TotalAmount:    total,
		DiscountAmount: in.DiscountAmount,
		FinalAmount:    final,
		Status:         entity.SaleStatusCompleted,
		SaleDate:       in.SaleDate,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	var lines []*entity.SaleLine
	var payments []*entity.Payment

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if existing, err := r.Sales.GetByNumber(in.SaleNumber); err != nil {
			return err
		} else if existing != nil {
			return &domain.DuplicateKeyError{Document: "venta", Key: in.SaleNumber}
		}

		// Fase de pre-chequeo: toda la disponibilidad antes de mutar nada
		for _, line := range in.Lines {
			key := entity.ItemKey{ShopID: in.ShopID, Type: entity.ItemTypeProduct, ItemID: line.ProductID}
			ok, err := uc.ledger.CheckAvailability(r.Stock, key, line.Quantity)
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
					ShopID:    in.ShopID,
					ItemType:  string(entity.ItemTypeProduct),
					ItemID:    line.ProductID,
					Available: available,
					Required:  line.Quantity,
				}
			}
		}

		if err := r.Sales.Create(sale); err != nil {
			return err
		}
		for _, lineIn := range in.Lines {
			line := &entity.SaleLine{
				ID:         uuid.New().String(),
				SaleID:     sale.ID,
				ProductID:  lineIn.ProductID,
				Quantity:   lineIn.Quantity,
				UnitPrice:  lineIn.UnitPrice,
				TotalPrice: lineIn.Quantity.Mul(lineIn.UnitPrice),
				CreatedAt:  now,
			}
			if err := r.Sales.CreateLine(line); err != nil {
				return err
			}
			lines = append(lines, line)

			_, err := uc.ledger.AdjustQuantity(r.Stock, r.Movements, ledger.AdjustInput{
				Key: entity.ItemKey{
					ShopID: in.ShopID,
					Type:   entity.ItemTypeProduct,
					ItemID: lineIn.ProductID,
				},
				Delta:  lineIn.Quantity.Neg(),
				Reason: entity.ReasonSale,
				Ref:    &ledger.Reference{Type: "sale", ID: sale.ID},
			})
			if err != nil {
				return err
			}
		}
		for _, payIn := range in.Payments {
			payment := &entity.Payment{
				ID:            uuid.New().String(),
				SaleID:        sale.ID,
				Amount:        payIn.Amount,
				PaymentMethod: entity.PaymentMethod(payIn.PaymentMethod),
				PaymentDate:   payIn.PaymentDate,
				Reference:     payIn.Reference,
				Notes:         payIn.Notes,
				CreatedAt:     now,
			}
			if err := r.Sales.CreatePayment(payment); err != nil {
				return err
			}
			payments = append(payments, payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewSaleResponse(sale, lines, payments), nil
}

// Get obtiene una venta con renglones y pagos.
func (uc *SaleUseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.saleRepo.ListLines(id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.saleRepo.ListPayments(id)
	if err != nil {
		return nil, err
	}
	return dto.NewSaleResponse(sale, lines, payments), nil
}

// List lista ventas, opcionalmente filtradas por tienda.
func (uc *SaleUseCase) List(ctx context.Context, shopID string, limit, offset int) ([]*dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(shopID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		lines, err := uc.saleRepo.ListLines(s.ID)
		if err != nil {
			return nil, err
		}
		payments, err := uc.saleRepo.ListPayments(s.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewSaleResponse(s, lines, payments))
	}
	return out, nil
}
