package repository

import (
	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain/entity"
)

// InventoryItemRepository acceso al libro central de inventario.
// Cada llamada es independiente: el almacén no garantiza atomicidad entre
// llamadas, por eso las actualizaciones de cantidad son compare-and-swap.
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	// GetByID retorna nil, nil si el artículo no existe.
	GetByID(id string) (*entity.InventoryItem, error)
	List() ([]*entity.InventoryItem, error)
	ListByCategory(category string) ([]*entity.InventoryItem, error)
	// Update modifica los atributos descriptivos (nombre, categoría, umbral,
	// unidad, marca). La cantidad se muta solo vía UpdateQuantityCAS.
	Update(item *entity.InventoryItem) error
	// UpdateQuantityCAS actualiza la cantidad solo si el valor vigente es
	// expected. Retorna domain.ErrConflict si otra sesión ganó la carrera.
	UpdateQuantityCAS(id string, expected, newQty decimal.Decimal) error
	Delete(id string) error
	ListLowStock() ([]*entity.InventoryItem, error)
}

// InventoryMovementRepository acceso al historial de movimientos.
// Los movimientos solo se borran como acción compensatoria inmediata tras un
// insert fallido aguas abajo; la cancelación normal es soft (SetCancelled).
type InventoryMovementRepository interface {
	Create(m *entity.InventoryMovement) error
	// GetByID retorna nil, nil si el movimiento no existe.
	GetByID(id string) (*entity.InventoryMovement, error)
	// ListRecent retorna movimientos ordenados del más reciente al más
	// antiguo, acotados a limit.
	ListRecent(limit int) ([]*entity.InventoryMovement, error)
	ListByItem(inventoryID string, limit int) ([]*entity.InventoryMovement, error)
	SetCancelled(id string, cancelled bool) error
	Delete(id string) error
}
