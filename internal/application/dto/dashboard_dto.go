package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/application/usecase"
)

// DashboardResponse resumen agregado de la pantalla inicial.
type DashboardResponse struct {
	LowStockItems   []ItemResponse  `json:"low_stock_items"`
	TasksPendientes int             `json:"tasks_pendientes"`
	TasksEnProceso  int             `json:"tasks_en_proceso"`
	OrdersPendiente int             `json:"orders_pendiente"`
	OrdersEnProceso int             `json:"orders_en_proceso"`
	TodayProduction decimal.Decimal `json:"today_production"`
}

// DashboardFromSummary mapea el resumen del caso de uso.
func DashboardFromSummary(s *usecase.DashboardSummary) DashboardResponse {
	out := DashboardResponse{
		TasksPendientes: s.TasksPendientes,
		TasksEnProceso:  s.TasksEnProceso,
		OrdersPendiente: s.OrdersPendiente,
		OrdersEnProceso: s.OrdersEnProceso,
		TodayProduction: s.TodayProduction,
	}
	for _, it := range s.LowStockItems {
		out.LowStockItems = append(out.LowStockItems, ItemFromEntity(it))
	}
	return out
}

// EfficiencyRowResponse fila del reporte de eficiencia.
type EfficiencyRowResponse struct {
	WorkerID       string  `json:"worker_id"`
	WorkerName     string  `json:"worker_name"`
	TasksCompleted int     `json:"tasks_completed"`
	EstimatedHours float64 `json:"estimated_hours"`
	ActualHours    float64 `json:"actual_hours"`
	Efficiency     float64 `json:"efficiency"`
}

// EfficiencyFromRows mapea las filas del caso de uso.
func EfficiencyFromRows(rows []usecase.WorkerEfficiencyRow) []EfficiencyRowResponse {
	out := make([]EfficiencyRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, EfficiencyRowResponse{
			WorkerID:       r.WorkerID,
			WorkerName:     r.WorkerName,
			TasksCompleted: r.TasksCompleted,
			EstimatedHours: r.EstimatedHours,
			ActualHours:    r.ActualHours,
			Efficiency:     r.Efficiency,
		})
	}
	return out
}
