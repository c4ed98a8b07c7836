package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain/entity"
)

// CreateSellerRequest entrada para crear un vendedor.
type CreateSellerRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// SellerResponse salida de un vendedor.
type SellerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SellerFromEntity mapea la entidad a la respuesta.
func SellerFromEntity(s *entity.Seller) SellerResponse {
	return SellerResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}
}

// SellerOperationRequest entrada para Carga, Venta o Devolución.
type SellerOperationRequest struct {
	InventoryID string          `json:"inventory_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Notes       string          `json:"notes"`
}

// SellerInventoryResponse stock de un artículo en poder del vendedor.
type SellerInventoryResponse struct {
	ID          string          `json:"id"`
	SellerID    string          `json:"seller_id"`
	InventoryID string          `json:"inventory_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	LastUpdated time.Time       `json:"last_updated"`
}

// SellerInventoryFromEntity mapea la entidad a la respuesta.
func SellerInventoryFromEntity(si *entity.SellerInventory) SellerInventoryResponse {
	return SellerInventoryResponse{
		ID:          si.ID,
		SellerID:    si.SellerID,
		InventoryID: si.InventoryID,
		Quantity:    si.Quantity,
		LastUpdated: si.LastUpdated,
	}
}

// SellerMovementResponse movimiento auditado del vendedor.
type SellerMovementResponse struct {
	ID          string          `json:"id"`
	SellerID    string          `json:"seller_id"`
	InventoryID string          `json:"inventory_id"`
	Type        string          `json:"movement_type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SellerMovementFromEntity mapea la entidad a la respuesta.
func SellerMovementFromEntity(m *entity.SellerMovement) SellerMovementResponse {
	return SellerMovementResponse{
		ID:          m.ID,
		SellerID:    m.SellerID,
		InventoryID: m.InventoryID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}
