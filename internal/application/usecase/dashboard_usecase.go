package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
	"github.com/pukassein/teysa/pkg/logger"
)

// DashboardSummary datos agregados para la pantalla inicial.
type DashboardSummary struct {
	LowStockItems   []*entity.InventoryItem
	TasksPendientes int
	TasksEnProceso  int
	OrdersPendiente int
	OrdersEnProceso int
	TodayProduction decimal.Decimal
}

// DashboardUseCase agrega los contadores de la pantalla inicial. Las
// consultas son independientes entre sí y se ejecutan en paralelo; un fallo
// en una sección se advierte y deja esa sección vacía en vez de tumbar todo
// el resumen.
type DashboardUseCase struct {
	itemRepo  repository.InventoryItemRepository
	taskRepo  repository.TaskRepository
	orderRepo repository.ProductionOrderRepository
	logRepo   repository.ProductionLogRepository
	log       *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	itemRepo repository.InventoryItemRepository,
	taskRepo repository.TaskRepository,
	orderRepo repository.ProductionOrderRepository,
	logRepo repository.ProductionLogRepository,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		itemRepo:  itemRepo,
		taskRepo:  taskRepo,
		orderRepo: orderRepo,
		logRepo:   logRepo,
		log:       log,
	}
}

// Summary arma el resumen lanzando las cuatro secciones en paralelo.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{TodayProduction: decimal.Zero}
	done := make(chan struct{}, 4)

	go func() {
		defer func() { done <- struct{}{} }()
		items, err := uc.itemRepo.ListLowStock()
		if err != nil {
			uc.log.Warn().Err(err).Msg("dashboard: stock bajo no disponible")
			return
		}
		summary.LowStockItems = items
	}()

	go func() {
		defer func() { done <- struct{}{} }()
		pendientes, err := uc.taskRepo.CountByStatus(entity.TaskPendiente)
		if err != nil {
			uc.log.Warn().Err(err).Msg("dashboard: conteo de tareas no disponible")
			return
		}
		enProceso, err := uc.taskRepo.CountByStatus(entity.TaskEnProceso)
		if err != nil {
			uc.log.Warn().Err(err).Msg("dashboard: conteo de tareas no disponible")
			return
		}
		summary.TasksPendientes = pendientes
		summary.TasksEnProceso = enProceso
	}()

	go func() {
		defer func() { done <- struct{}{} }()
		orders, err := uc.orderRepo.List()
		if err != nil {
			uc.log.Warn().Err(err).Msg("dashboard: órdenes no disponibles")
			return
		}
		for _, o := range orders {
			switch o.Status {
			case entity.OrderPendiente:
				summary.OrdersPendiente++
			case entity.OrderEnProceso:
				summary.OrdersEnProceso++
			}
		}
	}()

	go func() {
		defer func() { done <- struct{}{} }()
		logs, err := uc.logRepo.ListRecent(200)
		if err != nil {
			uc.log.Warn().Err(err).Msg("dashboard: producción del día no disponible")
			return
		}
		today := time.Now()
		y, m, d := today.Date()
		total := decimal.Zero
		for _, l := range logs {
			ly, lm, ld := l.ProductionDate.Date()
			if ly == y && lm == m && ld == d {
				total = total.Add(l.Quantity)
			}
		}
		summary.TodayProduction = total
	}()

	for i := 0; i < 4; i++ {
		<-done
	}
	return summary, nil
}
