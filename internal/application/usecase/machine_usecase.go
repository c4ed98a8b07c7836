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

func validMachineStatus(status string) bool {
	switch status {
	case entity.MachineDisponible, entity.MachineMantenimiento, entity.MachineInactivo:
		return true
	}
	return false
}

// MachineUseCase CRUD de máquinas de planta.
type MachineUseCase struct {
	repo repository.MachineRepository
}

// NewMachineUseCase construye el caso de uso.
func NewMachineUseCase(repo repository.MachineRepository) *MachineUseCase {
	return &MachineUseCase{repo: repo}
}

// Create da de alta una máquina.
func (uc *MachineUseCase) Create(ctx context.Context, name, status string, lastMaintenance time.Time) (*entity.Machine, error) {
	name = strings.TrimSpace(name)
	if name == "" || !validMachineStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	m := &entity.Machine{
		ID:              uuid.New().String(),
		Name:            name,
		Status:          status,
		LastMaintenance: lastMaintenance,
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.Create(m); err != nil {
		return nil, fmt.Errorf("crear máquina: %w", err)
	}
	return m, nil
}

// Get retorna una máquina por id.
func (uc *MachineUseCase) Get(ctx context.Context, id string) (*entity.Machine, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// List lista las máquinas.
func (uc *MachineUseCase) List(ctx context.Context) ([]*entity.Machine, error) {
	return uc.repo.List()
}

// Update actualiza nombre, estado y fecha de último mantenimiento.
func (uc *MachineUseCase) Update(ctx context.Context, id, name, status string, lastMaintenance time.Time) (*entity.Machine, error) {
	m, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || !validMachineStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	m.Name = name
	m.Status = status
	m.LastMaintenance = lastMaintenance
	if err := uc.repo.Update(m); err != nil {
		return nil, fmt.Errorf("actualizar máquina: %w", err)
	}
	return m, nil
}

// Delete elimina una máquina.
func (uc *MachineUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(id)
}
