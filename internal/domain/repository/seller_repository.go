package repository

import (
	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain/entity"
)

// SellerRepository acceso a vendedores ambulantes.
type SellerRepository interface {
	Create(s *entity.Seller) error
	// GetByID retorna nil, nil si el vendedor no existe.
	GetByID(id string) (*entity.Seller, error)
	List() ([]*entity.Seller, error)
	Delete(id string) error
}

// SellerInventoryRepository acceso al sub-libro de stock por vendedor.
type SellerInventoryRepository interface {
	Create(si *entity.SellerInventory) error
	// GetBySellerAndItem retorna nil, nil si el vendedor no tiene el artículo.
	GetBySellerAndItem(sellerID, inventoryID string) (*entity.SellerInventory, error)
	ListBySeller(sellerID string) ([]*entity.SellerInventory, error)
	// UpdateQuantityCAS espeja la semántica del libro central: actualiza solo
	// si la cantidad vigente es expected; domain.ErrConflict en caso contrario.
	UpdateQuantityCAS(id string, expected, newQty decimal.Decimal) error
	Delete(id string) error
}

// SellerMovementRepository auditoría de operaciones por vendedor.
type SellerMovementRepository interface {
	Create(m *entity.SellerMovement) error
	ListBySeller(sellerID string, limit int) ([]*entity.SellerMovement, error)
}
