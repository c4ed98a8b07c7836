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

	"github.com/pukassein/teysa/internal/application/auth"
	"github.com/pukassein/teysa/internal/application/ledger"
	"github.com/pukassein/teysa/internal/application/production"
	"github.com/pukassein/teysa/internal/application/seller"
	"github.com/pukassein/teysa/internal/application/usecase"
	infrapdf "github.com/pukassein/teysa/internal/infrastructure/pdf"
	"github.com/pukassein/teysa/internal/infrastructure/postgres"
	httpRouter "github.com/pukassein/teysa/internal/interfaces/http"
	"github.com/pukassein/teysa/pkg/config"
	"github.com/pukassein/teysa/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	recipeRepo := postgres.NewProductRecipeRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	logRepo := postgres.NewProductionLogRepository(pool)
	consumptionRepo := postgres.NewProductionConsumptionRepository(pool)
	sellerRepo := postgres.NewSellerRepository(pool)
	sellerInvRepo := postgres.NewSellerInventoryRepository(pool)
	sellerMovRepo := postgres.NewSellerMovementRepository(pool)
	workerRepo := postgres.NewWorkerRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	commentRepo := postgres.NewTaskCommentRepository(pool)
	machineRepo := postgres.NewMachineRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockLedger := ledger.NewStockLedger(itemRepo, movementRepo, log)
	resolver := production.NewRecipeResolver(productRepo, recipeRepo)
	feasibility := production.NewFeasibilityChecker(resolver, itemRepo)
	engine := production.NewEngine(stockLedger, resolver, consumptionRepo, log)
	productionUC := production.NewUseCase(
		engine, feasibility, txRunner,
		productRepo, recipeRepo, orderRepo, logRepo, consumptionRepo,
		itemRepo, workerRepo, log,
	)
	sellerUC := seller.NewUseCase(stockLedger, sellerRepo, sellerInvRepo, sellerMovRepo, log)
	authUC := auth.NewUseCase(userRepo, cfg.JWT, log)

	workerUC := usecase.NewWorkerUseCase(workerRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo, commentRepo)
	machineUC := usecase.NewMachineUseCase(machineRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	dashboardUC := usecase.NewDashboardUseCase(itemRepo, taskRepo, orderRepo, logRepo, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := usecase.NewReportUseCase(workerRepo, taskRepo, logRepo, itemRepo, pdfGenerator)

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
		Title:    "Teysa API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		StockLedger:  stockLedger,
		ProductionUC: productionUC,
		SellerUC:     sellerUC,
		WorkerUC:     workerUC,
		TaskUC:       taskUC,
		MachineUC:    machineUC,
		SupplierUC:   supplierUC,
		ReportUC:     reportUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
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
