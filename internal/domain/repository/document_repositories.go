package repository

import "github.com/jhoicas/confeccion-api/internal/domain/entity"

// PurchaseRepository puerto de persistencia para órdenes de compra.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateLine(line *entity.PurchaseLine) error
	GetByID(id string) (*entity.Purchase, error)
	GetByOrderID(orderID string) (*entity.Purchase, error)
	ListLines(purchaseID string) ([]*entity.PurchaseLine, error)
	List(limit, offset int) ([]*entity.Purchase, error)
}

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateLine(line *entity.SaleLine) error
	CreatePayment(payment *entity.Payment) error
	GetByID(id string) (*entity.Sale, error)
	GetByNumber(saleNumber string) (*entity.Sale, error)
	ListLines(saleID string) ([]*entity.SaleLine, error)
	ListPayments(saleID string) ([]*entity.Payment, error)
	List(shopID string, limit, offset int) ([]*entity.Sale, error)
}

// ProductionRepository puerto de persistencia para órdenes de producción.
type ProductionRepository interface {
	Create(run *entity.ProductionRun) error
	CreateLine(line *entity.ProductionLine) error
	CreateConsumption(consumption *entity.ProductionConsumption) error
	GetByID(id string) (*entity.ProductionRun, error)
	GetByNumber(runNumber string) (*entity.ProductionRun, error)
	ListLines(runID string) ([]*entity.ProductionLine, error)
	ListConsumptions(runID string) ([]*entity.ProductionConsumption, error)
	// Update persiste estado, actual_quantity, total_cost y end_date.
	Update(run *entity.ProductionRun) error
	UpdateLine(line *entity.ProductionLine) error
	UpdateConsumption(consumption *entity.ProductionConsumption) error
	List(limit, offset int) ([]*entity.ProductionRun, error)
}

// TransferRepository puerto de persistencia para traslados.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	CreateLine(line *entity.TransferLine) error
	GetByID(id string) (*entity.Transfer, error)
	GetByNumber(transferNumber string) (*entity.Transfer, error)
	ListLines(transferID string) ([]*entity.TransferLine, error)
	// Update persiste estado y received_date.
	Update(transfer *entity.Transfer) error
	List(limit, offset int) ([]*entity.Transfer, error)
}

// ReturnRepository puerto de persistencia para devoluciones.
type ReturnRepository interface {
	Create(ret *entity.Return) error
	GetByID(id string) (*entity.Return, error)
	GetByNumber(returnNumber string) (*entity.Return, error)
	List(limit, offset int) ([]*entity.Return, error)
}
