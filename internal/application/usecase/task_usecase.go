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

func validTaskStatus(status string) bool {
	switch status {
	case entity.TaskPendiente, entity.TaskEnProceso, entity.TaskTerminado, entity.TaskBloqueado:
		return true
	}
	return false
}

// TaskUseCase tareas de planta: CRUD, transiciones de estado con marcas de
// tiempo reales, archivado y comentarios.
type TaskUseCase struct {
	repo        repository.TaskRepository
	commentRepo repository.TaskCommentRepository
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository, commentRepo repository.TaskCommentRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo, commentRepo: commentRepo}
}

// TaskInput datos de alta o edición de tarea.
type TaskInput struct {
	Title         string
	WorkerIDs     []string
	EstimatedTime float64 // horas
}

// Create da de alta una tarea en estado Pendiente.
func (uc *TaskUseCase) Create(ctx context.Context, in TaskInput) (*entity.Task, error) {
	if strings.TrimSpace(in.Title) == "" || in.EstimatedTime < 0 {
		return nil, domain.ErrInvalidInput
	}
	t := &entity.Task{
		ID:            uuid.New().String(),
		Title:         strings.TrimSpace(in.Title),
		WorkerIDs:     in.WorkerIDs,
		EstimatedTime: in.EstimatedTime,
		Status:        entity.TaskPendiente,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(t); err != nil {
		return nil, fmt.Errorf("crear tarea: %w", err)
	}
	return t, nil
}

// Get retorna una tarea por id.
func (uc *TaskUseCase) Get(ctx context.Context, id string) (*entity.Task, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// List lista tareas, con o sin archivadas.
func (uc *TaskUseCase) List(ctx context.Context, includeArchived bool) ([]*entity.Task, error) {
	return uc.repo.List(includeArchived)
}

// Update actualiza título, asignados y tiempo estimado.
func (uc *TaskUseCase) Update(ctx context.Context, id string, in TaskInput) (*entity.Task, error) {
	t, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" || in.EstimatedTime < 0 {
		return nil, domain.ErrInvalidInput
	}
	t.Title = strings.TrimSpace(in.Title)
	t.WorkerIDs = in.WorkerIDs
	t.EstimatedTime = in.EstimatedTime
	if err := uc.repo.Update(t); err != nil {
		return nil, fmt.Errorf("actualizar tarea: %w", err)
	}
	return t, nil
}

// SetStatus cambia el estado de la tarea. Al pasar a En Proceso se marca
// StartTime si no existe; al pasar a Terminado se marca EndTime. Las marcas
// nunca se retroceden: volver una tarea a Pendiente conserva su historia.
func (uc *TaskUseCase) SetStatus(ctx context.Context, id, status string) (*entity.Task, error) {
	if !validTaskStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	switch status {
	case entity.TaskEnProceso:
		if t.StartTime == nil {
			t.StartTime = &now
		}
	case entity.TaskTerminado:
		if t.StartTime == nil {
			t.StartTime = &now
		}
		if t.EndTime == nil {
			t.EndTime = &now
		}
	}
	t.Status = status
	if err := uc.repo.Update(t); err != nil {
		return nil, fmt.Errorf("cambiar estado de tarea: %w", err)
	}
	return t, nil
}

// Archive archiva o desarchiva una tarea sin borrar su historia.
func (uc *TaskUseCase) Archive(ctx context.Context, id string, archived bool) error {
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetArchived(id, archived)
}

// Delete elimina una tarea.
func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(id)
}

// AddComment agrega un comentario a la tarea.
func (uc *TaskUseCase) AddComment(ctx context.Context, taskID, authorID, text string) (*entity.TaskComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.Get(ctx, taskID); err != nil {
		return nil, err
	}
	c := &entity.TaskComment{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		AuthorID:  authorID,
		Comment:   strings.TrimSpace(text),
		CreatedAt: time.Now(),
	}
	if err := uc.commentRepo.Create(c); err != nil {
		return nil, fmt.Errorf("comentar tarea: %w", err)
	}
	return c, nil
}

// ListComments lista los comentarios de una tarea.
func (uc *TaskUseCase) ListComments(ctx context.Context, taskID string) ([]*entity.TaskComment, error) {
	return uc.commentRepo.ListByTask(taskID)
}

// DeleteComment elimina un comentario.
func (uc *TaskUseCase) DeleteComment(ctx context.Context, commentID string) error {
	return uc.commentRepo.Delete(commentID)
}
