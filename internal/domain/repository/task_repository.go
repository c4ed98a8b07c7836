package repository

import "github.com/pukassein/teysa/internal/domain/entity"

// TaskRepository acceso a tareas de planta.
type TaskRepository interface {
	Create(t *entity.Task) error
	GetByID(id string) (*entity.Task, error)
	// List retorna tareas; includeArchived controla si se incluyen las
	// archivadas.
	List(includeArchived bool) ([]*entity.Task, error)
	Update(t *entity.Task) error
	SetArchived(id string, archived bool) error
	Delete(id string) error
	CountByStatus(status string) (int, error)
}

// TaskCommentRepository acceso a comentarios de tareas.
type TaskCommentRepository interface {
	Create(c *entity.TaskComment) error
	ListByTask(taskID string) ([]*entity.TaskComment, error)
	Delete(id string) error
}
