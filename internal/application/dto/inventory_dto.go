package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain/entity"
)

// CreateItemRequest entrada para crear un artículo de inventario.
type CreateItemRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Brand    string          `json:"brand" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit" validate:"required"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// UpdateItemRequest entrada para editar un artículo. Quantity, si viene,
// ajusta el stock con un movimiento sintético de auditoría.
type UpdateItemRequest struct {
	Name     *string          `json:"name"`
	Brand    *string          `json:"brand"`
	Category *string          `json:"category"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     *string          `json:"unit"`
	MinStock *decimal.Decimal `json:"min_stock"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Category  string          `json:"category"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	MinStock  decimal.Decimal `json:"min_stock"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ItemFromEntity mapea la entidad a la respuesta.
func ItemFromEntity(it *entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Brand:     it.Brand,
		Category:  it.Category,
		Quantity:  it.Quantity,
		Unit:      it.Unit,
		MinStock:  it.LowStockThreshold,
		LowStock:  it.IsLowStock(),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

// ItemWithWarningResponse artículo más advertencia de auditoría incompleta.
type ItemWithWarningResponse struct {
	Item    ItemResponse `json:"item"`
	Warning string       `json:"warning,omitempty"`
}

// RegisterMovementRequest entrada para registrar un movimiento manual.
// Quantity es el delta firmado: positivo Entrada, negativo Salida.
type RegisterMovementRequest struct {
	InventoryID string          `json:"inventory_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason" validate:"required"`
}

// MovementResponse salida de un movimiento de inventario.
type MovementResponse struct {
	ID          string          `json:"id"`
	InventoryID string          `json:"inventory_id"`
	Quantity    decimal.Decimal `json:"quantity_change"`
	Type        string          `json:"movement_type"`
	Reason      string          `json:"reason"`
	IsCancelled bool            `json:"is_cancelled"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementFromEntity mapea la entidad a la respuesta.
func MovementFromEntity(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		InventoryID: m.InventoryID,
		Quantity:    m.QuantityChange,
		Type:        m.Type,
		Reason:      m.Reason,
		IsCancelled: m.IsCancelled,
		CreatedAt:   m.CreatedAt,
	}
}
