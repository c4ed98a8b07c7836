package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pukassein/teysa/internal/application/auth"
	"github.com/pukassein/teysa/internal/application/ledger"
	"github.com/pukassein/teysa/internal/application/production"
	"github.com/pukassein/teysa/internal/application/seller"
	"github.com/pukassein/teysa/internal/application/usecase"
	"github.com/pukassein/teysa/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	StockLedger  *ledger.StockLedger
	ProductionUC *production.UseCase
	SellerUC     *seller.UseCase
	WorkerUC     *usecase.WorkerUseCase
	TaskUC       *usecase.TaskUseCase
	MachineUC    *usecase.MachineUseCase
	SupplierUC   *usecase.SupplierUseCase
	ReportUC     *usecase.ReportUseCase
	DashboardUC  *usecase.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)

	// Inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockLedger)
	invGroup.Post("/items", inventoryHandler.CreateItem)
	invGroup.Get("/items", inventoryHandler.ListItems)
	invGroup.Get("/items/low-stock", inventoryHandler.ListLowStock)
	invGroup.Get("/items/:id", inventoryHandler.GetItem)
	invGroup.Put("/items/:id", inventoryHandler.UpdateItem)
	invGroup.Delete("/items/:id", adminOnly, inventoryHandler.DeleteItem)
	invGroup.Get("/items/:id/movements", inventoryHandler.ListItemMovements)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/movements/:id/cancel", inventoryHandler.CancelMovement)

	// Productos y producción (protegido)
	productionHandler := NewProductionHandler(deps.ProductionUC)
	products := protected.Group("/products")
	products.Post("/", productionHandler.CreateProduct)
	products.Get("/", productionHandler.ListProducts)
	products.Get("/:id/recipe", productionHandler.ListRecipe)
	products.Post("/:id/recipe", productionHandler.AddRecipeLine)
	products.Delete("/recipe/:lineId", productionHandler.DeleteRecipeLine)
	products.Delete("/:id", adminOnly, productionHandler.DeleteProduct)

	prod := protected.Group("/production")
	prod.Post("/feasibility", productionHandler.CheckFeasibility)
	prod.Post("/orders", productionHandler.CreateOrder)
	prod.Get("/orders", productionHandler.ListOrders)
	prod.Delete("/orders/:id", adminOnly, productionHandler.DeleteOrder)
	prod.Post("/logs", productionHandler.CreateLog)
	prod.Get("/logs", productionHandler.ListLogs)
	prod.Delete("/logs/:id", productionHandler.DeleteLog)

	// Vendedores (protegido)
	sellers := protected.Group("/sellers")
	sellerHandler := NewSellerHandler(deps.SellerUC)
	sellers.Post("/", sellerHandler.Create)
	sellers.Get("/", sellerHandler.List)
	sellers.Delete("/:id", adminOnly, sellerHandler.Delete)
	sellers.Get("/:id/inventory", sellerHandler.ListInventory)
	sellers.Get("/:id/movements", sellerHandler.ListMovements)
	sellers.Post("/:id/carga", sellerHandler.Carga)
	sellers.Post("/:id/venta", sellerHandler.Venta)
	sellers.Post("/:id/devolucion", sellerHandler.Devolucion)

	// Funcionarios (protegido)
	workers := protected.Group("/workers")
	workerHandler := NewWorkerHandler(deps.WorkerUC)
	workers.Post("/", workerHandler.Create)
	workers.Get("/", workerHandler.List)
	workers.Put("/:id", workerHandler.Update)
	workers.Delete("/:id", adminOnly, workerHandler.Delete)

	// Tareas (protegido)
	tasks := protected.Group("/tasks")
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Put("/:id/status", taskHandler.SetStatus)
	tasks.Put("/:id/archive", taskHandler.Archive)
	tasks.Delete("/:id", adminOnly, taskHandler.Delete)
	tasks.Post("/:id/comments", taskHandler.AddComment)
	tasks.Get("/:id/comments", taskHandler.ListComments)
	tasks.Delete("/comments/:commentId", taskHandler.DeleteComment)

	// Máquinas (protegido)
	machines := protected.Group("/machines")
	machineHandler := NewMachineHandler(deps.MachineUC)
	machines.Post("/", machineHandler.Create)
	machines.Get("/", machineHandler.List)
	machines.Put("/:id", machineHandler.Update)
	machines.Delete("/:id", adminOnly, machineHandler.Delete)

	// Proveedores (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Reportes y dashboard (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/efficiency", reportHandler.WorkerEfficiency)
	reports.Get("/efficiency/pdf", reportHandler.WorkerEfficiencyPDF)
	reports.Get("/production/pdf", reportHandler.ProductionPDF)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
