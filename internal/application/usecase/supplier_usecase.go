package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// SupplierInput datos de alta o edición de proveedor.
type SupplierInput struct {
	CompanyName    string
	Location       string
	PhoneNumber    string
	ContactPerson  string
	SuppliesDetail string
}

func (in *SupplierInput) validate() error {
	if strings.TrimSpace(in.CompanyName) == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create da de alta un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in SupplierInput) (*entity.Supplier, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s := &entity.Supplier{
		ID:             uuid.New().String(),
		CompanyName:    strings.TrimSpace(in.CompanyName),
		Location:       in.Location,
		PhoneNumber:    in.PhoneNumber,
		ContactPerson:  in.ContactPerson,
		SuppliesDetail: in.SuppliesDetail,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.Create(s); err != nil {
		return nil, fmt.Errorf("crear proveedor: %w", err)
	}
	return s, nil
}

// Get retorna un proveedor por id.
func (uc *SupplierUseCase) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// List lista los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]*entity.Supplier, error) {
	return uc.repo.List()
}

// Update actualiza los datos de un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in SupplierInput) (*entity.Supplier, error) {
	s, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.CompanyName = strings.TrimSpace(in.CompanyName)
	s.Location = in.Location
	s.PhoneNumber = in.PhoneNumber
	s.ContactPerson = in.ContactPerson
	s.SuppliesDetail = in.SuppliesDetail
	if err := uc.repo.Update(s); err != nil {
		return nil, fmt.Errorf("actualizar proveedor: %w", err)
	}
	return s, nil
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(id)
}
