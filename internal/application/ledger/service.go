// Package ledger implementa el motor de inventario: el único punto por el que
// se muta el stock. Cada operación bloquea la fila de la posición (SELECT FOR
// UPDATE vía StockItemRepository.GetForUpdate) para que dos flujos concurrentes
// sobre el mismo (tienda, artículo) nunca intercalen su read-then-write.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	domledger "github.com/jhoicas/confeccion-api/internal/domain/ledger"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// Reference documento de negocio que origina un movimiento.
type Reference struct {
	Type string // "purchase", "sale", "production_run", "transfer", "return"
	ID   string
}

// AdjustInput entrada para AdjustQuantity.
type AdjustInput struct {
	Key    entity.ItemKey
	Delta  decimal.Decimal // positivo entrada, negativo salida
	Reason entity.MovementReason
	Ref    *Reference
	Notes  string
}

// Service motor del ledger. Sin estado propio: opera sobre repositorios ya
// atados a la transacción del caller, al estilo de los orquestadores.
type Service struct{}

// NewService construye el servicio.
func NewService() *Service {
	return &Service{}
}

// GetPosition lectura pura de una posición. Retorna nil si no existe; nunca crea.
func (s *Service) GetPosition(stockRepo repository.StockItemRepository, key entity.ItemKey) (*entity.StockItem, error) {
	return stockRepo.Get(key)
}

// CheckAvailability lectura pura: disponible (cantidad - reservada) >= requerido.
func (s *Service) CheckAvailability(stockRepo repository.StockItemRepository, key entity.ItemKey, required decimal.Decimal) (bool, error) {
	item, err := stockRepo.Get(key)
	if err != nil {
		return false, err
	}
	if item == nil {
		return !required.GreaterThan(decimal.Zero), nil
	}
	return domledger.CanDeduct(item.Quantity, item.ReservedQuantity, required), nil
}

// AdjustQuantity aplica quantity += delta bloqueando la fila, crea la posición
// si no existe y el delta es positivo, y escribe exactamente un StockMovement
// con la misma razón/referencia. Solo valida no-negatividad de la cantidad en
// mano; el caller de salidas debe verificar disponibilidad antes (la reserva
// no se descuenta aquí).
func (s *Service) AdjustQuantity(
	stockRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
	in AdjustInput,
) (*entity.StockItem, error) {
	if !in.Key.Type.Valid() || !in.Reason.Valid() || in.Key.ShopID == "" || in.Key.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()

	item, err := stockRepo.GetForUpdate(in.Key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		if !in.Delta.GreaterThan(decimal.Zero) {
			return nil, &domain.InsufficientStockError{
				ShopID:    in.Key.ShopID,
				ItemType:  string(in.Key.Type),
				ItemID:    in.Key.ItemID,
				Available: decimal.Zero,
				Required:  in.Delta.Neg(),
			}
		}
		// Creación perezosa en el primer ingreso
		item = newStockItem(in.Key, now)
		item.Quantity = in.Delta
		if err := stockRepo.Create(item); err != nil {
			return nil, err
		}
	} else {
		newQty := item.Quantity.Add(in.Delta)
		if newQty.IsNegative() {
			return nil, &domain.InsufficientStockError{
				ShopID:    in.Key.ShopID,
				ItemType:  string(in.Key.Type),
				ItemID:    in.Key.ItemID,
				Available: item.Quantity,
				Required:  in.Delta.Neg(),
			}
		}
		if newQty.LessThan(item.ReservedQuantity) {
			return nil, &domain.InvariantViolationError{
				Detail: "el ajuste dejaría la cantidad " + newQty.String() +
					" por debajo de la reserva " + item.ReservedQuantity.String(),
			}
		}
		item.Quantity = newQty
		item.UpdatedAt = now
		if err := stockRepo.UpdateQuantities(item); err != nil {
			return nil, err
		}
	}
	if err := domledger.CheckInvariants(item.Quantity, item.ReservedQuantity); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ShopID:        in.Key.ShopID,
		ItemType:      in.Key.Type,
		ProductID:     item.ProductID,
		RawMaterialID: item.RawMaterialID,
		Quantity:      in.Delta,
		Reason:        in.Reason,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if in.Ref != nil {
		mov.ReferenceType = in.Ref.Type
		mov.ReferenceID = in.Ref.ID
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return item, nil
}

// Reserve incrementa la reserva bloqueando la fila. Falla si la cantidad
// solicitada excede la disponibilidad. No escribe movimiento: reservar no
// mueve cantidad.
func (s *Service) Reserve(stockRepo repository.StockItemRepository, key entity.ItemKey, amount decimal.Decimal) (*entity.StockItem, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := stockRepo.GetForUpdate(key)
	if err != nil {
		return nil, err
	}
	if item == nil || !domledger.CanDeduct(item.Quantity, item.ReservedQuantity, amount) {
		available := decimal.Zero
		if item != nil {
			available = item.Available()
		}
		return nil, &domain.InsufficientStockError{
			ShopID:    key.ShopID,
			ItemType:  string(key.Type),
			ItemID:    key.ItemID,
			Available: available,
			Required:  amount,
		}
	}
	item.ReservedQuantity = item.ReservedQuantity.Add(amount)
	item.UpdatedAt = time.Now()
	if err := domledger.CheckInvariants(item.Quantity, item.ReservedQuantity); err != nil {
		return nil, err
	}
	if err := stockRepo.UpdateQuantities(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Release deshace una reserva sin tocar la cantidad en mano; la reserva queda
// con piso en cero. No escribe movimiento.
func (s *Service) Release(stockRepo repository.StockItemRepository, key entity.ItemKey, amount decimal.Decimal) (*entity.StockItem, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := stockRepo.GetForUpdate(key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	newReserved := item.ReservedQuantity.Sub(amount)
	if newReserved.IsNegative() {
		newReserved = decimal.Zero
	}
	item.ReservedQuantity = newReserved
	item.UpdatedAt = time.Now()
	if err := stockRepo.UpdateQuantities(item); err != nil {
		return nil, err
	}
	return item, nil
}

// CommitReservation finaliza una reserva descontando cantidad y reserva bajo
// un solo bloqueo (salida de un traslado en origen) y escribe un movimiento
// con delta negativo. Falla con violación de invariante si la reserva o la
// cantidad no cubren el monto: el caller debió reservar antes.
func (s *Service) CommitReservation(
	stockRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
	key entity.ItemKey,
	amount decimal.Decimal,
	reason entity.MovementReason,
	ref *Reference,
) (*entity.StockItem, error) {
	if !amount.GreaterThan(decimal.Zero) || !reason.Valid() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item, err := stockRepo.GetForUpdate(key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.ReservedQuantity.LessThan(amount) || item.Quantity.LessThan(amount) {
		return nil, &domain.InvariantViolationError{
			Detail: "commit de reserva por " + amount.String() + " con cantidad " +
				item.Quantity.String() + " y reserva " + item.ReservedQuantity.String(),
		}
	}
	item.Quantity = item.Quantity.Sub(amount)
	item.ReservedQuantity = item.ReservedQuantity.Sub(amount)
	item.UpdatedAt = now
	if err := domledger.CheckInvariants(item.Quantity, item.ReservedQuantity); err != nil {
		return nil, err
	}
	if err := stockRepo.UpdateQuantities(item); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ShopID:        key.ShopID,
		ItemType:      key.Type,
		ProductID:     item.ProductID,
		RawMaterialID: item.RawMaterialID,
		Quantity:      amount.Neg(),
		Reason:        reason,
		CreatedAt:     now,
	}
	if ref != nil {
		mov.ReferenceType = ref.Type
		mov.ReferenceID = ref.ID
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return item, nil
}

func newStockItem(key entity.ItemKey, now time.Time) *entity.StockItem {
	item := &entity.StockItem{
		ID:               uuid.New().String(),
		ShopID:           key.ShopID,
		ItemType:         key.Type,
		Quantity:         decimal.Zero,
		ReservedQuantity: decimal.Zero,
		MinStockLevel:    domledger.DefaultMinStockLevel,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if key.Type == entity.ItemTypeRawMaterial {
		item.RawMaterialID = key.ItemID
	} else {
		item.ProductID = key.ItemID
	}
	return item
}
