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

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

// WorkerRepo implementación sobre PostgreSQL (usable con pool o tx).
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

// Create persiste un funcionario.
func (r *WorkerRepo) Create(w *entity.Worker) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO workers (id, name, shift, created_at) VALUES ($1, $2, $3, $4)`,
		w.ID, w.Name, w.Shift, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("create worker: %w", err)
	}
	return nil
}

// GetByID obtiene un funcionario por ID; nil, nil si no existe.
func (r *WorkerRepo) GetByID(id string) (*entity.Worker, error) {
	var w entity.Worker
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, shift, created_at FROM workers WHERE id = $1`, id).
		Scan(&w.ID, &w.Name, &w.Shift, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get worker: %w", err)
	}
	return &w, nil
}

// List lista los funcionarios por nombre.
func (r *WorkerRepo) List() ([]*entity.Worker, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, shift, created_at FROM workers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Worker
	for rows.Next() {
		var w entity.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Shift, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

// Update actualiza nombre y turno.
func (r *WorkerRepo) Update(w *entity.Worker) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE workers SET name = $2, shift = $3 WHERE id = $1`,
		w.ID, w.Name, w.Shift)
	if err != nil {
		return fmt.Errorf("update worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un funcionario.
func (r *WorkerRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
