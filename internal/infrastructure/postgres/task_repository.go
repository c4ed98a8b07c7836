package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)
var _ repository.TaskCommentRepository = (*TaskCommentRepo)(nil)

// TaskRepo implementación sobre PostgreSQL (usable con pool o tx).
// worker_ids se guarda como text[].
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, title, worker_ids, estimated_time, start_time, end_time, status, is_archived, created_at`

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.WorkerIDs, &t.EstimatedTime,
		&t.StartTime, &t.EndTime, &t.Status, &t.IsArchived, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una tarea.
func (r *TaskRepo) Create(t *entity.Task) error {
	query := `
		INSERT INTO tasks (id, title, worker_ids, estimated_time, start_time, end_time, status, is_archived, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Title, t.WorkerIDs, t.EstimatedTime, t.StartTime, t.EndTime,
		t.Status, t.IsArchived, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID; nil, nil si no existe.
func (r *TaskRepo) GetByID(id string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	t, err := scanTask(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// List lista tareas; includeArchived controla si entran las archivadas.
func (r *TaskRepo) List(includeArchived bool) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if !includeArchived {
		query += ` WHERE is_archived = false`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update actualiza una tarea completa.
func (r *TaskRepo) Update(t *entity.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, worker_ids = $3, estimated_time = $4, start_time = $5, end_time = $6, status = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		t.ID, t.Title, t.WorkerIDs, t.EstimatedTime, t.StartTime, t.EndTime, t.Status)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetArchived archiva o desarchiva una tarea.
func (r *TaskRepo) SetArchived(id string, archived bool) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE tasks SET is_archived = $2 WHERE id = $1`, id, archived)
	if err != nil {
		return fmt.Errorf("set task archived: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una tarea (los comentarios caen en cascada).
func (r *TaskRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus cuenta tareas activas (no archivadas) en un estado.
func (r *TaskRepo) CountByStatus(status string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM tasks WHERE status = $1 AND is_archived = false`, status).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}

// TaskCommentRepo implementación sobre PostgreSQL (usable con pool o tx).
type TaskCommentRepo struct {
	q Querier
}

// NewTaskCommentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaskCommentRepository(q Querier) *TaskCommentRepo {
	return &TaskCommentRepo{q: q}
}

// Create persiste un comentario. AuthorID vacío se guarda NULL.
func (r *TaskCommentRepo) Create(c *entity.TaskComment) error {
	authorID := (*string)(nil)
	if c.AuthorID != "" {
		authorID = &c.AuthorID
	}
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO task_comments (id, task_id, author_id, comment, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.TaskID, authorID, c.Comment, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create task comment: %w", err)
	}
	return nil
}

// ListByTask lista los comentarios de una tarea del más antiguo al más nuevo.
func (r *TaskCommentRepo) ListByTask(taskID string) ([]*entity.TaskComment, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, task_id, author_id, comment, created_at FROM task_comments WHERE task_id = $1 ORDER BY created_at`,
		taskID)
	if err != nil {
		return nil, fmt.Errorf("list task comments: %w", err)
	}
	defer rows.Close()

	var out []*entity.TaskComment
	for rows.Next() {
		var c entity.TaskComment
		var authorID *string
		if err := rows.Scan(&c.ID, &c.TaskID, &authorID, &c.Comment, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task comment: %w", err)
		}
		if authorID != nil {
			c.AuthorID = *authorID
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Delete elimina un comentario.
func (r *TaskCommentRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM task_comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
