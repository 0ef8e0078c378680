package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/jhoicas/confeccion-api/internal/application/auth"
	"github.com/jhoicas/confeccion-api/internal/application/ledger"
	"github.com/jhoicas/confeccion-api/internal/application/usecase"
	"github.com/jhoicas/confeccion-api/internal/application/workflow"
	"github.com/jhoicas/confeccion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/confeccion-api/internal/interfaces/http"
	"github.com/jhoicas/confeccion-api/pkg/config"
	"github.com/jhoicas/confeccion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos atados al pool (lecturas y validaciones fuera de transacción)
	shopRepo := postgres.NewShopRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	rawMaterialRepo := postgres.NewRawMaterialRepository(pool)
	fabricRuleRepo := postgres.NewFabricRuleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	stockRepo := postgres.NewStockItemRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerSvc := ledger.NewService()
	queryUC := ledger.NewQueryUseCase(stockRepo, movementRepo)
	retentionUC := ledger.NewRetentionUseCase(movementRepo, cfg.Inventory.MovementRetentionDays)

	warehouseShopID := cfg.Inventory.DefaultWarehouseShopID
	purchaseUC := workflow.NewPurchaseUseCase(txRunner, rawMaterialRepo, purchaseRepo, ledgerSvc, warehouseShopID)
	saleUC := workflow.NewSaleUseCase(txRunner, productRepo, shopRepo, saleRepo, ledgerSvc)
	productionUC := workflow.NewProductionUseCase(txRunner, productRepo, rawMaterialRepo, productionRepo, ledgerSvc, warehouseShopID)
	transferUC := workflow.NewTransferUseCase(txRunner, shopRepo, productRepo, transferRepo, ledgerSvc)
	returnUC := workflow.NewReturnUseCase(txRunner, productRepo, saleRepo, returnRepo, ledgerSvc, warehouseShopID)
	adjustmentUC := workflow.NewAdjustmentUseCase(txRunner, shopRepo, productRepo, rawMaterialRepo, ledgerSvc)

	shopUC := usecase.NewShopUseCase(shopRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	rawMaterialUC := usecase.NewRawMaterialUseCase(rawMaterialRepo)
	fabricRuleUC := usecase.NewFabricRuleUseCase(fabricRuleRepo, productRepo, rawMaterialRepo)
	authUC := auth.NewUseCase(userRepo, shopRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Poda nocturna de movimientos viejos (si hay ventana de retención)
	scheduler := cron.New()
	if retentionUC.Enabled() {
		_, err := scheduler.AddFunc("30 2 * * *", func() {
			pruneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			deleted, err := retentionUC.PruneOld(pruneCtx)
			if err != nil {
				log.Error().Err(err).Msg("poda de movimientos")
				return
			}
			log.Info().Int64("deleted", deleted).Msg("movimientos podados")
		})
		if err != nil {
			log.Error().Err(err).Msg("programar poda de movimientos")
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Confección API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ShopUC:        shopUC,
		ProductUC:     productUC,
		RawMaterialUC: rawMaterialUC,
		FabricRuleUC:  fabricRuleUC,
		QueryUC:       queryUC,
		AdjustmentUC:  adjustmentUC,
		PurchaseUC:    purchaseUC,
		SaleUC:        saleUC,
		ProductionUC:  productionUC,
		TransferUC:    transferUC,
		ReturnUC:      returnUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
