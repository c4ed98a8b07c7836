package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
	"github.com/pukassein/teysa/pkg/logger"
)

// LogListLimit tope de registros de producción listados.
const LogListLimit = 100

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Se usa solo para escrituras de autoría
// multi-fila (producto + receta); los caminos del libro de stock NO corren en
// transacción: allí la consistencia la da la política de compensación.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		recipeRepo repository.ProductRecipeRepository,
	) error) error
}

// UseCase casos de uso de producción: productos y recetas, órdenes con
// verificación de factibilidad, y registros de producción que disparan el
// motor de consumo.
type UseCase struct {
	engine      *Engine
	feasibility *FeasibilityChecker
	txRunner    TxRunner

	productRepo     repository.ProductRepository
	recipeRepo      repository.ProductRecipeRepository
	orderRepo       repository.ProductionOrderRepository
	logRepo         repository.ProductionLogRepository
	consumptionRepo repository.ProductionConsumptionRepository
	itemRepo        repository.InventoryItemRepository
	workerRepo      repository.WorkerRepository
	log             *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	engine *Engine,
	feasibility *FeasibilityChecker,
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	recipeRepo repository.ProductRecipeRepository,
	orderRepo repository.ProductionOrderRepository,
	logRepo repository.ProductionLogRepository,
	consumptionRepo repository.ProductionConsumptionRepository,
	itemRepo repository.InventoryItemRepository,
	workerRepo repository.WorkerRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		engine:          engine,
		feasibility:     feasibility,
		txRunner:        txRunner,
		productRepo:     productRepo,
		recipeRepo:      recipeRepo,
		orderRepo:       orderRepo,
		logRepo:         logRepo,
		consumptionRepo: consumptionRepo,
		itemRepo:        itemRepo,
		workerRepo:      workerRepo,
		log:             log,
	}
}

// ── Productos y recetas ───────────────────────────────────────────────────────

// RecipeLineInput línea de receta para alta de producto.
type RecipeLineInput struct {
	RawMaterialInventoryID string
	QuantityRequired       decimal.Decimal
}

// CreateProduct da de alta un producto y su receta en una sola transacción.
// El artículo vinculado debe existir y ser Producto Terminado; cada línea de
// receta exige cantidad > 0.
func (uc *UseCase) CreateProduct(ctx context.Context, name, finishedInventoryID string, lines []RecipeLineInput) (*entity.Product, error) {
	if strings.TrimSpace(name) == "" || finishedInventoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(finishedInventoryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.Category != entity.CategoryFinishedGood {
		return nil, domain.ErrInvalidInput
	}
	for _, ln := range lines {
		if ln.RawMaterialInventoryID == "" || !ln.QuantityRequired.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	existing, err := uc.productRepo.GetByFinishedInventoryID(finishedInventoryID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	product := &entity.Product{
		ID:                         uuid.New().String(),
		Name:                       strings.TrimSpace(name),
		FinishedProductInventoryID: finishedInventoryID,
		CreatedAt:                  time.Now(),
	}
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, recipeRepo repository.ProductRecipeRepository) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		for _, ln := range lines {
			row := &entity.ProductRecipe{
				ID:                     uuid.New().String(),
				ProductID:              product.ID,
				RawMaterialInventoryID: ln.RawMaterialInventoryID,
				QuantityRequired:       ln.QuantityRequired,
			}
			if err := recipeRepo.Create(row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("crear producto con receta: %w", err)
	}
	return product, nil
}

// AddRecipeLine agrega una línea a la receta de un producto existente.
func (uc *UseCase) AddRecipeLine(ctx context.Context, productID string, in RecipeLineInput) (*entity.ProductRecipe, error) {
	if in.RawMaterialInventoryID == "" || !in.QuantityRequired.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	material, err := uc.itemRepo.GetByID(in.RawMaterialInventoryID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	row := &entity.ProductRecipe{
		ID:                     uuid.New().String(),
		ProductID:              productID,
		RawMaterialInventoryID: in.RawMaterialInventoryID,
		QuantityRequired:       in.QuantityRequired,
	}
	if err := uc.recipeRepo.Create(row); err != nil {
		return nil, fmt.Errorf("agregar línea de receta: %w", err)
	}
	return row, nil
}

// DeleteRecipeLine elimina una línea de receta.
func (uc *UseCase) DeleteRecipeLine(ctx context.Context, recipeID string) error {
	return uc.recipeRepo.Delete(recipeID)
}

// ListProducts lista los productos definidos.
func (uc *UseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.List()
}

// ListRecipe lista la receta de un producto.
func (uc *UseCase) ListRecipe(ctx context.Context, productID string) ([]*entity.ProductRecipe, error) {
	return uc.recipeRepo.ListByProduct(productID)
}

// DeleteProduct elimina un producto (sus líneas de receta caen en cascada en
// el esquema).
func (uc *UseCase) DeleteProduct(ctx context.Context, productID string) error {
	return uc.productRepo.Delete(productID)
}

// ── Órdenes ───────────────────────────────────────────────────────────────────

// CheckFeasibility expone la verificación previa para que la UI muestre el
// detalle por material antes de confirmar la orden.
func (uc *UseCase) CheckFeasibility(ctx context.Context, productID string, desired decimal.Decimal) (*FeasibilityResult, error) {
	return uc.feasibility.Check(ctx, productID, desired)
}

// CreateOrder crea una orden de producción solo si la verificación de
// factibilidad pasa: producto con receta y stock suficiente en cada material.
// La orden es un plan: no consume stock. Junto con el error se devuelve el
// resultado de factibilidad para que el operador vea qué material faltó.
func (uc *UseCase) CreateOrder(ctx context.Context, productID string, quantity decimal.Decimal) (*entity.ProductionOrder, *FeasibilityResult, error) {
	result, err := uc.feasibility.Check(ctx, productID, quantity)
	if err != nil {
		return nil, nil, err
	}
	if !result.HasRecipe {
		return nil, result, domain.ErrNoRecipe
	}
	if !result.Feasible {
		return nil, result, domain.ErrInsufficientStock
	}
	order := &entity.ProductionOrder{
		ID:                uuid.New().String(),
		ProductID:         productID,
		QuantityToProduce: quantity,
		Status:            entity.OrderPendiente,
		CreatedAt:         time.Now(),
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, result, fmt.Errorf("crear orden: %w", err)
	}
	return order, result, nil
}

// ListOrders lista órdenes de producción.
func (uc *UseCase) ListOrders(ctx context.Context) ([]*entity.ProductionOrder, error) {
	return uc.orderRepo.List()
}

// DeleteOrder elimina una orden (solo el plan; nunca toca stock).
func (uc *UseCase) DeleteOrder(ctx context.Context, orderID string) error {
	return uc.orderRepo.Delete(orderID)
}

// refreshOrderStatus recalcula el estado de la orden a partir de la cantidad
// acumulada de registros que la referencian: Pendiente sin registros,
// En Proceso con registros parciales, Completado al alcanzar la meta.
func (uc *UseCase) refreshOrderStatus(ctx context.Context, orderID string) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil || order == nil {
		return
	}
	logged, err := uc.orderRepo.SumLoggedQuantity(orderID)
	if err != nil {
		uc.log.Warn().Str("order_id", orderID).Err(err).Msg("no se pudo recalcular el estado de la orden")
		return
	}
	status := entity.OrderPendiente
	var completedAt *time.Time
	switch {
	case logged.GreaterThanOrEqual(order.QuantityToProduce):
		status = entity.OrderCompletado
		now := time.Now()
		completedAt = &now
	case logged.GreaterThan(decimal.Zero):
		status = entity.OrderEnProceso
	}
	if status == order.Status {
		return
	}
	if err := uc.orderRepo.UpdateStatus(orderID, status, completedAt); err != nil {
		uc.log.Warn().Str("order_id", orderID).Err(err).Msg("no se pudo actualizar el estado de la orden")
	}
}

// ── Registros de producción ───────────────────────────────────────────────────

// LogInput datos para registrar producción ejecutada.
type LogInput struct {
	WorkerID       string
	InventoryID    string
	OrderID        string // opcional
	Quantity       decimal.Decimal
	ProductionDate time.Time
}

// LogResult resultado del registro: el log creado y el reporte del motor.
// Warning no vacío significa fallos parciales de consumo que requieren
// reconciliación manual.
type LogResult struct {
	Log     *entity.ProductionLog
	Report  *ConsumptionReport
	Warning string
}

// CreateLog registra producción ejecutada: inserta el registro y dispara el
// motor de consumo. Si la entrada del producto terminado falla, el registro
// recién insertado se borra (compensación) para no dejar un log sin efecto en
// el stock. Fallos parciales en materias primas NO borran el registro: se
// devuelve la advertencia con el detalle para reconciliación manual.
func (uc *UseCase) CreateLog(ctx context.Context, in LogInput) (*LogResult, error) {
	if in.WorkerID == "" || in.InventoryID == "" || !in.Quantity.GreaterThan(decimal.Zero) || in.ProductionDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	worker, err := uc.workerRepo.GetByID(in.WorkerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(in.InventoryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.OrderID != "" {
		order, err := uc.orderRepo.GetByID(in.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.ErrNotFound
		}
	}

	logRow := &entity.ProductionLog{
		ID:             uuid.New().String(),
		WorkerID:       in.WorkerID,
		InventoryID:    in.InventoryID,
		OrderID:        in.OrderID,
		Quantity:       in.Quantity,
		ProductionDate: in.ProductionDate,
		CreatedAt:      time.Now(),
	}
	if err := uc.logRepo.Create(logRow); err != nil {
		return nil, fmt.Errorf("crear registro de producción: %w", err)
	}

	report, applyErr := uc.engine.Apply(ctx, logRow.ID, in.InventoryID, in.Quantity)
	if applyErr != nil && !report.FinishedGoodApplied {
		// Nada llegó al stock: borrar el registro recién insertado.
		if compErr := uc.logRepo.Delete(logRow.ID); compErr != nil {
			uc.log.Error().Str("log_id", logRow.ID).Err(compErr).
				Msg("borrado compensatorio del registro de producción fallido")
			return nil, &domain.PartialConsistencyError{
				Table: "production_log", RowID: logRow.ID, Delta: in.Quantity, Cause: compErr,
			}
		}
		return nil, applyErr
	}

	if in.OrderID != "" {
		uc.refreshOrderStatus(ctx, in.OrderID)
	}

	result := &LogResult{Log: logRow, Report: report}
	if applyErr != nil {
		// Producción registrada pero con materiales sin descontar.
		result.Warning = applyErr.Error()
	}
	return result, nil
}

// DeleteLog elimina un registro de producción ejecutando primero la reversión
// completa. Si la reversión falla total o parcialmente, el registro NO se
// borra: conservarlo es la única trazabilidad para la corrección manual.
func (uc *UseCase) DeleteLog(ctx context.Context, logID string) error {
	logRow, err := uc.logRepo.GetByID(logID)
	if err != nil {
		return err
	}
	if logRow == nil {
		return domain.ErrNotFound
	}

	report, revErr := uc.engine.Reverse(ctx, logID, logRow.InventoryID, logRow.Quantity)
	if revErr != nil || !report.FullyApplied() {
		if revErr == nil {
			revErr = report.lineError()
		}
		return fmt.Errorf("reversión incompleta, el registro se conserva: %w", revErr)
	}

	if err := uc.consumptionRepo.DeleteByLog(logID); err != nil {
		uc.log.Warn().Str("log_id", logID).Err(err).Msg("no se pudo borrar la foto de consumo")
	}
	if err := uc.logRepo.Delete(logID); err != nil {
		return fmt.Errorf("borrar registro de producción: %w", err)
	}

	if logRow.OrderID != "" {
		uc.refreshOrderStatus(ctx, logRow.OrderID)
	}
	return nil
}

// ListLogs lista registros recientes de producción.
func (uc *UseCase) ListLogs(ctx context.Context) ([]*entity.ProductionLog, error) {
	return uc.logRepo.ListRecent(LogListLimit)
}
