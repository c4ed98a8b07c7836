package repository

import "github.com/pukassein/teysa/internal/domain/entity"

// SupplierRepository acceso a proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
	Update(s *entity.Supplier) error
	Delete(id string) error
}
