package repository

import "github.com/pukassein/teysa/internal/domain/entity"

// MachineRepository acceso a máquinas de planta.
type MachineRepository interface {
	Create(m *entity.Machine) error
	GetByID(id string) (*entity.Machine, error)
	List() ([]*entity.Machine, error)
	Update(m *entity.Machine) error
	Delete(id string) error
}
