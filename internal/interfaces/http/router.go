package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeccion-api/internal/application/auth"
	"github.com/jhoicas/confeccion-api/internal/application/ledger"
	"github.com/jhoicas/confeccion-api/internal/application/usecase"
	"github.com/jhoicas/confeccion-api/internal/application/workflow"
	"github.com/jhoicas/confeccion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ShopUC        *usecase.ShopUseCase
	ProductUC     *usecase.ProductUseCase
	RawMaterialUC *usecase.RawMaterialUseCase
	FabricRuleUC  *usecase.FabricRuleUseCase
	QueryUC       *ledger.QueryUseCase
	AdjustmentUC  *workflow.AdjustmentUseCase
	PurchaseUC    *workflow.PurchaseUseCase
	SaleUC        *workflow.SaleUseCase
	ProductionUC  *workflow.ProductionUseCase
	TransferUC    *workflow.TransferUseCase
	ReturnUC      *workflow.ReturnUseCase
	AuthUC        *auth.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	manager := RequireRole(entity.RoleAdmin, entity.RoleShopManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Shops: lectura para todos los autenticados, escritura solo admin
	shops := protected.Group("/shops")
	shopHandler := NewShopHandler(deps.ShopUC)
	shops.Get("/", shopHandler.List)
	shops.Get("/:id", shopHandler.GetByID)
	shops.Post("/", adminOnly, shopHandler.Create)
	shops.Put("/:id", adminOnly, shopHandler.Update)

	// Products y reglas de consumo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.FabricRuleUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", manager, productHandler.Create)
	products.Put("/:id", manager, productHandler.Update)
	products.Delete("/:id", manager, productHandler.Delete)
	products.Get("/:id/fabric-rules", productHandler.ListRules)
	products.Post("/:id/fabric-rules", manager, productHandler.CreateRule)
	products.Delete("/:id/fabric-rules/:ruleId", manager, productHandler.DeleteRule)

	// Raw materials
	materials := protected.Group("/raw-materials")
	rawMaterialHandler := NewRawMaterialHandler(deps.RawMaterialUC)
	materials.Get("/", rawMaterialHandler.List)
	materials.Get("/:id", rawMaterialHandler.GetByID)
	materials.Post("/", manager, rawMaterialHandler.Create)
	materials.Put("/:id", manager, rawMaterialHandler.Update)
	materials.Delete("/:id", manager, rawMaterialHandler.Delete)

	// Inventory: consultas, ajuste manual y reconciliación
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.QueryUC, deps.AdjustmentUC)
	invGroup.Get("/stocks", inventoryHandler.ListStocks)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/stocks/adjust", manager, inventoryHandler.Adjust)
	invGroup.Get("/reconcile", adminOnly, inventoryHandler.Reconcile)

	// Purchases
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/", manager, purchaseHandler.Receive)

	// Sales: cualquier rol autenticado puede vender
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Post("/", saleHandler.Commit)

	// Production
	production := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	production.Get("/", productionHandler.List)
	production.Get("/:id", productionHandler.GetByID)
	production.Post("/", manager, productionHandler.Create)
	production.Post("/:id/complete", manager, productionHandler.Complete)

	// Transfers
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/", manager, transferHandler.Create)
	transfers.Post("/:id/receive", manager, transferHandler.Receive)

	// Returns
	returns := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnUC)
	returns.Get("/", returnHandler.List)
	returns.Get("/:id", returnHandler.GetByID)
	returns.Post("/", returnHandler.Process)
}
