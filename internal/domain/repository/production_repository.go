package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain/entity"
)

// ProductionOrderRepository acceso a órdenes de producción.
type ProductionOrderRepository interface {
	Create(o *entity.ProductionOrder) error
	// GetByID retorna nil, nil si la orden no existe.
	GetByID(id string) (*entity.ProductionOrder, error)
	List() ([]*entity.ProductionOrder, error)
	UpdateStatus(id, status string, completedAt *time.Time) error
	// SumLoggedQuantity suma la cantidad de todos los registros de producción
	// que referencian la orden (para el ciclo de vida Pendiente → En Proceso
	// → Completado).
	SumLoggedQuantity(orderID string) (decimal.Decimal, error)
	Delete(id string) error
}

// ProductionLogRepository acceso a registros de producción ejecutada.
type ProductionLogRepository interface {
	Create(l *entity.ProductionLog) error
	// GetByID retorna nil, nil si el registro no existe.
	GetByID(id string) (*entity.ProductionLog, error)
	// ListRecent retorna registros ordenados por fecha de producción y
	// creación descendentes, acotados a limit.
	ListRecent(limit int) ([]*entity.ProductionLog, error)
	Delete(id string) error
}

// ProductionConsumptionRepository acceso a la foto de consumo por registro.
type ProductionConsumptionRepository interface {
	CreateBatch(rows []*entity.ProductionConsumption) error
	ListByLog(logID string) ([]*entity.ProductionConsumption, error)
	DeleteByLog(logID string) error
}
