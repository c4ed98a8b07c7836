package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
)

// Jornada laboral: lunes a viernes, 07:00–12:00 y 13:00–17:30. Las horas
// trabajadas de una tarea son el solapamiento de su ejecución con estas
// ventanas; el tiempo fuera de jornada no cuenta.
type workWindow struct {
	startHour, startMin int
	endHour, endMin     int
}

var workWindows = []workWindow{
	{7, 0, 12, 0},
	{13, 0, 17, 30},
}

// WorkingHours calcula las horas laborales entre start y end: suma, por cada
// día hábil del intervalo, el solapamiento con las ventanas de jornada.
// Retorna 0 si end no es posterior a start.
func WorkingHours(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	var total time.Duration
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for day := first; !day.After(end); day = day.AddDate(0, 0, 1) {
		wd := day.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for _, w := range workWindows {
			wStart := time.Date(day.Year(), day.Month(), day.Day(), w.startHour, w.startMin, 0, 0, start.Location())
			wEnd := time.Date(day.Year(), day.Month(), day.Day(), w.endHour, w.endMin, 0, 0, start.Location())
			if start.After(wStart) {
				wStart = start
			}
			if end.Before(wEnd) {
				wEnd = end
			}
			if wEnd.After(wStart) {
				total += wEnd.Sub(wStart)
			}
		}
	}
	return total.Hours()
}

// WorkerEfficiencyRow eficiencia de un funcionario: estimado vs horas
// laborales reales de sus tareas terminadas. Efficiency = estimado / real
// × 100; >100 significa que terminó antes de lo estimado.
type WorkerEfficiencyRow struct {
	WorkerID       string
	WorkerName     string
	TasksCompleted int
	EstimatedHours float64
	ActualHours    float64
	Efficiency     float64
}

// ProductionReportRow un registro de producción con nombres resueltos.
type ProductionReportRow struct {
	Date       time.Time
	WorkerName string
	ItemName   string
	Quantity   decimal.Decimal
}

// PDFGenerator puerto de salida para reportes en PDF.
type PDFGenerator interface {
	WorkerEfficiencyPDF(title string, rows []WorkerEfficiencyRow) ([]byte, error)
	ProductionPDF(title string, rows []ProductionReportRow) ([]byte, error)
}

// ReportUseCase reportes de eficiencia y producción, con exportación a PDF.
type ReportUseCase struct {
	workerRepo repository.WorkerRepository
	taskRepo   repository.TaskRepository
	logRepo    repository.ProductionLogRepository
	itemRepo   repository.InventoryItemRepository
	pdf        PDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	workerRepo repository.WorkerRepository,
	taskRepo repository.TaskRepository,
	logRepo repository.ProductionLogRepository,
	itemRepo repository.InventoryItemRepository,
	pdf PDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		workerRepo: workerRepo,
		taskRepo:   taskRepo,
		logRepo:    logRepo,
		itemRepo:   itemRepo,
		pdf:        pdf,
	}
}

// WorkerEfficiency calcula la eficiencia por funcionario sobre las tareas
// terminadas (archivadas incluidas: la historia completa cuenta).
func (uc *ReportUseCase) WorkerEfficiency(ctx context.Context) ([]WorkerEfficiencyRow, error) {
	workers, err := uc.workerRepo.List()
	if err != nil {
		return nil, err
	}
	tasks, err := uc.taskRepo.List(true)
	if err != nil {
		return nil, err
	}

	byWorker := make(map[string]*WorkerEfficiencyRow, len(workers))
	rows := make([]WorkerEfficiencyRow, 0, len(workers))
	for _, w := range workers {
		rows = append(rows, WorkerEfficiencyRow{WorkerID: w.ID, WorkerName: w.Name})
	}
	for i := range rows {
		byWorker[rows[i].WorkerID] = &rows[i]
	}

	for _, t := range tasks {
		if t.Status != entity.TaskTerminado || t.StartTime == nil || t.EndTime == nil {
			continue
		}
		actual := WorkingHours(*t.StartTime, *t.EndTime)
		// El estimado de la tarea se reparte entre los asignados.
		share := t.EstimatedTime
		if n := len(t.WorkerIDs); n > 1 {
			share = t.EstimatedTime / float64(n)
		}
		for _, wid := range t.WorkerIDs {
			row, ok := byWorker[wid]
			if !ok {
				continue
			}
			row.TasksCompleted++
			row.EstimatedHours += share
			row.ActualHours += actual
		}
	}
	for i := range rows {
		if rows[i].ActualHours > 0 {
			rows[i].Efficiency = rows[i].EstimatedHours / rows[i].ActualHours * 100
		}
	}
	return rows, nil
}

// WorkerEfficiencyPDF exporta el reporte de eficiencia a PDF.
func (uc *ReportUseCase) WorkerEfficiencyPDF(ctx context.Context) ([]byte, error) {
	rows, err := uc.WorkerEfficiency(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.WorkerEfficiencyPDF("Reporte de Eficiencia por Funcionario", rows)
}

// Production arma el reporte de producción reciente con nombres resueltos.
func (uc *ReportUseCase) Production(ctx context.Context, limit int) ([]ProductionReportRow, error) {
	if limit <= 0 {
		limit = 100
	}
	logs, err := uc.logRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	rows := make([]ProductionReportRow, 0, len(logs))
	for _, l := range logs {
		row := ProductionReportRow{Date: l.ProductionDate, Quantity: l.Quantity}
		if w, err := uc.workerRepo.GetByID(l.WorkerID); err == nil && w != nil {
			row.WorkerName = w.Name
		}
		if item, err := uc.itemRepo.GetByID(l.InventoryID); err == nil && item != nil {
			row.ItemName = item.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ProductionPDF exporta el reporte de producción a PDF.
func (uc *ReportUseCase) ProductionPDF(ctx context.Context, limit int) ([]byte, error) {
	rows, err := uc.Production(ctx, limit)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Reporte de Producción (últimos %d registros)", len(rows))
	return uc.pdf.ProductionPDF(title, rows)
}
