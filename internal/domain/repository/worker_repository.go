package repository

import "github.com/pukassein/teysa/internal/domain/entity"

// WorkerRepository acceso a funcionarios.
type WorkerRepository interface {
	Create(w *entity.Worker) error
	GetByID(id string) (*entity.Worker, error)
	List() ([]*entity.Worker, error)
	Update(w *entity.Worker) error
	Delete(id string) error
}
