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

// WorkerUseCase CRUD de funcionarios.
type WorkerUseCase struct {
	repo repository.WorkerRepository
}

// NewWorkerUseCase construye el caso de uso.
func NewWorkerUseCase(repo repository.WorkerRepository) *WorkerUseCase {
	return &WorkerUseCase{repo: repo}
}

// Create da de alta un funcionario con turno válido.
func (uc *WorkerUseCase) Create(ctx context.Context, name, shift string) (*entity.Worker, error) {
	name = strings.TrimSpace(name)
	if name == "" || !entity.ValidShift(shift) {
		return nil, domain.ErrInvalidInput
	}
	w := &entity.Worker{ID: uuid.New().String(), Name: name, Shift: shift, CreatedAt: time.Now()}
	if err := uc.repo.Create(w); err != nil {
		return nil, fmt.Errorf("crear funcionario: %w", err)
	}
	return w, nil
}

// Get retorna un funcionario por id.
func (uc *WorkerUseCase) Get(ctx context.Context, id string) (*entity.Worker, error) {
	w, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

// List lista los funcionarios.
func (uc *WorkerUseCase) List(ctx context.Context) ([]*entity.Worker, error) {
	return uc.repo.List()
}

// Update actualiza nombre y turno.
func (uc *WorkerUseCase) Update(ctx context.Context, id, name, shift string) (*entity.Worker, error) {
	w, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || !entity.ValidShift(shift) {
		return nil, domain.ErrInvalidInput
	}
	w.Name = name
	w.Shift = shift
	if err := uc.repo.Update(w); err != nil {
		return nil, fmt.Errorf("actualizar funcionario: %w", err)
	}
	return w, nil
}

// Delete elimina un funcionario.
func (uc *WorkerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(id)
}
