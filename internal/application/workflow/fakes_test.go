package workflow_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeccion-api/internal/application/ledger"
	"github.com/jhoicas/confeccion-api/internal/application/workflow"
	"github.com/jhoicas/confeccion-api/internal/domain"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
	"github.com/jhoicas/confeccion-api/internal/domain/repository"
)

// Fakes en memoria de todos los puertos, compartidos por los tests de los
// orquestadores. El txRunner es pasante (sin rollback): los tests de fallo
// verifican que el orquestador no haya mutado nada ANTES del error, que es
// la garantía que el rollback real refuerza.

const warehouseID = "shop-bodega"

type fakeStockRepo struct {
	items map[entity.ItemKey]*entity.StockItem
}

func (f *fakeStockRepo) Get(key entity.ItemKey) (*entity.StockItem, error) {
	item, ok := f.items[key]
	if !ok {
		return nil, nil
	}
	copia := *item
	return &copia, nil
}

func (f *fakeStockRepo) GetForUpdate(key entity.ItemKey) (*entity.StockItem, error) {
	return f.Get(key)
}

func (f *fakeStockRepo) Create(item *entity.StockItem) error {
	copia := *item
	f.items[item.Key()] = &copia
	return nil
}

func (f *fakeStockRepo) UpdateQuantities(item *entity.StockItem) error {
	if _, ok := f.items[item.Key()]; !ok {
		return domain.ErrNotFound
	}
	copia := *item
	f.items[item.Key()] = &copia
	return nil
}

func (f *fakeStockRepo) List(filter repository.StockFilter) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, item := range f.items {
		if filter.ShopID != "" && item.ShopID != filter.ShopID {
			continue
		}
		copia := *item
		out = append(out, &copia)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key(), out[j].Key()
		if a.ShopID != b.ShopID {
			return a.ShopID < b.ShopID
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.ItemID < b.ItemID
	})
	return pagina(out, filter.Limit, filter.Offset), nil
}

// pagina aplica Limit/Offset con la convención del repo real:
// Limit <= 0 significa sin paginación.
func pagina[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	copia := *m
	f.movements = append(f.movements, &copia)
	return nil
}

func (f *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(f.movements) - 1; i >= 0; i-- {
		copia := *f.movements[i]
		out = append(out, &copia)
	}
	return pagina(out, filter.Limit, filter.Offset), nil
}

func (f *fakeMovementRepo) SumByItem(key entity.ItemKey) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range f.movements {
		if m.ShopID != key.ShopID || m.ItemType != key.Type {
			continue
		}
		id := m.ProductID
		if m.ItemType == entity.ItemTypeRawMaterial {
			id = m.RawMaterialID
		}
		if id != key.ItemID {
			continue
		}
		sum = sum.Add(m.Quantity)
	}
	return sum, nil
}

func (f *fakeMovementRepo) SumsByShop(shopID string) ([]repository.ItemMovementSum, error) {
	return nil, nil
}

func (f *fakeMovementRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	return 0, nil
}

// byReason filtra el historial por razón, para aserciones.
func (f *fakeMovementRepo) byReason(reason entity.MovementReason) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if m.Reason == reason {
			out = append(out, m)
		}
	}
	return out
}

type fakeShopRepo struct {
	shops map[string]*entity.Shop
}

func (f *fakeShopRepo) Create(shop *entity.Shop) error {
	f.shops[shop.ID] = shop
	return nil
}

func (f *fakeShopRepo) GetByID(id string) (*entity.Shop, error) {
	shop, ok := f.shops[id]
	if !ok {
		return nil, nil
	}
	return shop, nil
}

func (f *fakeShopRepo) List(limit, offset int) ([]*entity.Shop, error) {
	var out []*entity.Shop
	for _, s := range f.shops {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeShopRepo) Update(shop *entity.Shop) error {
	f.shops[shop.ID] = shop
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

type fakeRawMaterialRepo struct {
	materials map[string]*entity.RawMaterial
}

func (f *fakeRawMaterialRepo) Create(m *entity.RawMaterial) error {
	f.materials[m.ID] = m
	return nil
}

func (f *fakeRawMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	m, ok := f.materials[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (f *fakeRawMaterialRepo) GetBySKU(sku string) (*entity.RawMaterial, error) {
	for _, m := range f.materials {
		if m.SKU == sku {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeRawMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) {
	var out []*entity.RawMaterial
	for _, m := range f.materials {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeRawMaterialRepo) Update(m *entity.RawMaterial) error {
	f.materials[m.ID] = m
	return nil
}

type fakeFabricRuleRepo struct {
	rules []*entity.FabricRule
}

func (f *fakeFabricRuleRepo) Create(rule *entity.FabricRule) error {
	f.rules = append(f.rules, rule)
	return nil
}

func (f *fakeFabricRuleRepo) ListByProduct(productID string) ([]*entity.FabricRule, error) {
	var out []*entity.FabricRule
	for _, r := range f.rules {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFabricRuleRepo) List(limit, offset int) ([]*entity.FabricRule, error) {
	return f.rules, nil
}

func (f *fakeFabricRuleRepo) Delete(id string) error {
	for i, r := range f.rules {
		if r.ID == id {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakePurchaseRepo struct {
	purchases map[string]*entity.Purchase
	lines     []*entity.PurchaseLine
}

func (f *fakePurchaseRepo) Create(p *entity.Purchase) error {
	f.purchases[p.ID] = p
	return nil
}

func (f *fakePurchaseRepo) CreateLine(l *entity.PurchaseLine) error {
	f.lines = append(f.lines, l)
	return nil
}

func (f *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := f.purchases[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (f *fakePurchaseRepo) GetByOrderID(orderID string) (*entity.Purchase, error) {
	for _, p := range f.purchases {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePurchaseRepo) ListLines(purchaseID string) ([]*entity.PurchaseLine, error) {
	var out []*entity.PurchaseLine
	for _, l := range f.lines {
		if l.PurchaseID == purchaseID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range f.purchases {
		out = append(out, p)
	}
	return out, nil
}

type fakeSaleRepo struct {
	sales    map[string]*entity.Sale
	lines    []*entity.SaleLine
	payments []*entity.Payment
}

func (f *fakeSaleRepo) Create(s *entity.Sale) error {
	f.sales[s.ID] = s
	return nil
}

func (f *fakeSaleRepo) CreateLine(l *entity.SaleLine) error {
	f.lines = append(f.lines, l)
	return nil
}

func (f *fakeSaleRepo) CreatePayment(p *entity.Payment) error {
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSaleRepo) GetByNumber(saleNumber string) (*entity.Sale, error) {
	for _, s := range f.sales {
		if s.SaleNumber == saleNumber {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRepo) ListLines(saleID string) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	for _, l := range f.lines {
		if l.SaleID == saleID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) ListPayments(saleID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range f.payments {
		if p.SaleID == saleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) List(shopID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.sales {
		if shopID != "" && s.ShopID != shopID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeProductionRepo struct {
	runs         map[string]*entity.ProductionRun
	lines        []*entity.ProductionLine
	consumptions []*entity.ProductionConsumption
}

func (f *fakeProductionRepo) Create(r *entity.ProductionRun) error {
	copia := *r
	f.runs[r.ID] = &copia
	return nil
}

func (f *fakeProductionRepo) CreateLine(l *entity.ProductionLine) error {
	copia := *l
	f.lines = append(f.lines, &copia)
	return nil
}

func (f *fakeProductionRepo) CreateConsumption(c *entity.ProductionConsumption) error {
	copia := *c
	f.consumptions = append(f.consumptions, &copia)
	return nil
}

func (f *fakeProductionRepo) GetByID(id string) (*entity.ProductionRun, error) {
	r, ok := f.runs[id]
	if !ok {
		return nil, nil
	}
	copia := *r
	return &copia, nil
}

func (f *fakeProductionRepo) GetByNumber(runNumber string) (*entity.ProductionRun, error) {
	for _, r := range f.runs {
		if r.RunNumber == runNumber {
			copia := *r
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeProductionRepo) ListLines(runID string) ([]*entity.ProductionLine, error) {
	var out []*entity.ProductionLine
	for _, l := range f.lines {
		if l.ProductionRunID == runID {
			copia := *l
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (f *fakeProductionRepo) ListConsumptions(runID string) ([]*entity.ProductionConsumption, error) {
	var out []*entity.ProductionConsumption
	for _, c := range f.consumptions {
		if c.ProductionRunID == runID {
			copia := *c
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (f *fakeProductionRepo) Update(r *entity.ProductionRun) error {
	if _, ok := f.runs[r.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *r
	f.runs[r.ID] = &copia
	return nil
}

func (f *fakeProductionRepo) UpdateLine(l *entity.ProductionLine) error {
	for i, existing := range f.lines {
		if existing.ID == l.ID {
			copia := *l
			f.lines[i] = &copia
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProductionRepo) UpdateConsumption(c *entity.ProductionConsumption) error {
	for i, existing := range f.consumptions {
		if existing.ID == c.ID {
			copia := *c
			f.consumptions[i] = &copia
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProductionRepo) List(limit, offset int) ([]*entity.ProductionRun, error) {
	var out []*entity.ProductionRun
	for _, r := range f.runs {
		copia := *r
		out = append(out, &copia)
	}
	return out, nil
}

type fakeTransferRepo struct {
	transfers map[string]*entity.Transfer
	lines     []*entity.TransferLine
}

func (f *fakeTransferRepo) Create(t *entity.Transfer) error {
	copia := *t
	f.transfers[t.ID] = &copia
	return nil
}

func (f *fakeTransferRepo) CreateLine(l *entity.TransferLine) error {
	copia := *l
	f.lines = append(f.lines, &copia)
	return nil
}

func (f *fakeTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	t, ok := f.transfers[id]
	if !ok {
		return nil, nil
	}
	copia := *t
	return &copia, nil
}

func (f *fakeTransferRepo) GetByNumber(transferNumber string) (*entity.Transfer, error) {
	for _, t := range f.transfers {
		if t.TransferNumber == transferNumber {
			copia := *t
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeTransferRepo) ListLines(transferID string) ([]*entity.TransferLine, error) {
	var out []*entity.TransferLine
	for _, l := range f.lines {
		if l.TransferID == transferID {
			copia := *l
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (f *fakeTransferRepo) Update(t *entity.Transfer) error {
	if _, ok := f.transfers[t.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *t
	f.transfers[t.ID] = &copia
	return nil
}

func (f *fakeTransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range f.transfers {
		copia := *t
		out = append(out, &copia)
	}
	return out, nil
}

type fakeReturnRepo struct {
	returns map[string]*entity.Return
}

func (f *fakeReturnRepo) Create(r *entity.Return) error {
	copia := *r
	f.returns[r.ID] = &copia
	return nil
}

func (f *fakeReturnRepo) GetByID(id string) (*entity.Return, error) {
	r, ok := f.returns[id]
	if !ok {
		return nil, nil
	}
	copia := *r
	return &copia, nil
}

func (f *fakeReturnRepo) GetByNumber(returnNumber string) (*entity.Return, error) {
	for _, r := range f.returns {
		if r.ReturnNumber == returnNumber {
			copia := *r
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeReturnRepo) List(limit, offset int) ([]*entity.Return, error) {
	var out []*entity.Return
	for _, r := range f.returns {
		copia := *r
		out = append(out, &copia)
	}
	return out, nil
}

// fakeTxRunner pasante: ejecuta fn con los repos de la fixture sin
// transacción real.
type fakeTxRunner struct {
	repos workflow.Repos
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(r workflow.Repos) error) error {
	return fn(f.repos)
}

// fixture ambiente completo para ejercitar los orquestadores en memoria.
type fixture struct {
	stock        *fakeStockRepo
	movements    *fakeMovementRepo
	shops        *fakeShopRepo
	products     *fakeProductRepo
	rawMaterials *fakeRawMaterialRepo
	fabricRules  *fakeFabricRuleRepo
	purchases    *fakePurchaseRepo
	sales        *fakeSaleRepo
	production   *fakeProductionRepo
	transfers    *fakeTransferRepo
	returns      *fakeReturnRepo
	txRunner     *fakeTxRunner
	ledger       *ledger.Service
}

func newFixture() *fixture {
	f := &fixture{
		stock:        &fakeStockRepo{items: make(map[entity.ItemKey]*entity.StockItem)},
		movements:    &fakeMovementRepo{},
		shops:        &fakeShopRepo{shops: make(map[string]*entity.Shop)},
		products:     &fakeProductRepo{products: make(map[string]*entity.Product)},
		rawMaterials: &fakeRawMaterialRepo{materials: make(map[string]*entity.RawMaterial)},
		fabricRules:  &fakeFabricRuleRepo{},
		purchases:    &fakePurchaseRepo{purchases: make(map[string]*entity.Purchase)},
		sales:        &fakeSaleRepo{sales: make(map[string]*entity.Sale)},
		production:   &fakeProductionRepo{runs: make(map[string]*entity.ProductionRun)},
		transfers:    &fakeTransferRepo{transfers: make(map[string]*entity.Transfer)},
		returns:      &fakeReturnRepo{returns: make(map[string]*entity.Return)},
		ledger:       ledger.NewService(),
	}
	f.txRunner = &fakeTxRunner{repos: workflow.Repos{
		Stock:        f.stock,
		Movements:    f.movements,
		Purchases:    f.purchases,
		Sales:        f.sales,
		Production:   f.production,
		Transfers:    f.transfers,
		Returns:      f.returns,
		Products:     f.products,
		RawMaterials: f.rawMaterials,
		FabricRules:  f.fabricRules,
	}}

	// Catálogo base: bodega, dos tiendas, un producto y dos materias primas
	f.shops.shops[warehouseID] = &entity.Shop{ID: warehouseID, Name: "Bodega Central", IsActive: true}
	f.shops.shops["shop-1"] = &entity.Shop{ID: "shop-1", Name: "Tienda Centro", IsActive: true}
	f.shops.shops["shop-2"] = &entity.Shop{ID: "shop-2", Name: "Tienda Norte", IsActive: true}
	f.products.products["prod-camisa"] = &entity.Product{
		ID: "prod-camisa", SKU: "CAM-001", Name: "Camisa clásica",
		UnitPrice: d("45"), CostPrice: d("20"), IsActive: true,
	}
	f.rawMaterials.materials["mat-tela"] = &entity.RawMaterial{
		ID: "mat-tela", SKU: "TEL-001", Name: "Tela algodón", Unit: "kg",
		UnitPrice: d("8"), IsActive: true,
	}
	f.rawMaterials.materials["mat-hilo"] = &entity.RawMaterial{
		ID: "mat-hilo", SKU: "HIL-001", Name: "Hilo poliéster", Unit: "rollos",
		UnitPrice: d("2.5"), IsActive: true,
	}
	return f
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func productKey(shopID, productID string) entity.ItemKey {
	return entity.ItemKey{ShopID: shopID, Type: entity.ItemTypeProduct, ItemID: productID}
}

func materialKey(shopID, materialID string) entity.ItemKey {
	return entity.ItemKey{ShopID: shopID, Type: entity.ItemTypeRawMaterial, ItemID: materialID}
}

// seedStock crea una posición con cantidad y reserva dadas.
func seedStock(t *testing.T, f *fixture, key entity.ItemKey, qty, reserved string) {
	t.Helper()
	item := &entity.StockItem{
		ID:               "stk-" + key.ShopID + "-" + key.ItemID,
		ShopID:           key.ShopID,
		ItemType:         key.Type,
		Quantity:         d(qty),
		ReservedQuantity: d(reserved),
		MinStockLevel:    d("10"),
	}
	if key.Type == entity.ItemTypeRawMaterial {
		item.RawMaterialID = key.ItemID
	} else {
		item.ProductID = key.ItemID
	}
	require.NoError(t, f.stock.Create(item))
}

// quantityAt cantidad en mano de una posición (cero si no existe).
func quantityAt(t *testing.T, f *fixture, key entity.ItemKey) decimal.Decimal {
	t.Helper()
	item, err := f.stock.Get(key)
	require.NoError(t, err)
	if item == nil {
		return decimal.Zero
	}
	return item.Quantity
}

// reservedAt reserva de una posición (cero si no existe).
func reservedAt(t *testing.T, f *fixture, key entity.ItemKey) decimal.Decimal {
	t.Helper()
	item, err := f.stock.Get(key)
	require.NoError(t, err)
	if item == nil {
		return decimal.Zero
	}
	return item.ReservedQuantity
}
