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

var _ repository.MachineRepository = (*MachineRepo)(nil)

// MachineRepo implementación sobre PostgreSQL (usable con pool o tx).
type MachineRepo struct {
	q Querier
}

// NewMachineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMachineRepository(q Querier) *MachineRepo {
	return &MachineRepo{q: q}
}

// Create persiste una máquina.
func (r *MachineRepo) Create(m *entity.Machine) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO machines (id, name, status, last_maintenance, created_at) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Name, m.Status, m.LastMaintenance, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create machine: %w", err)
	}
	return nil
}

// GetByID obtiene una máquina por ID; nil, nil si no existe.
func (r *MachineRepo) GetByID(id string) (*entity.Machine, error) {
	var m entity.Machine
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, status, last_maintenance, created_at FROM machines WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Status, &m.LastMaintenance, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get machine: %w", err)
	}
	return &m, nil
}

// List lista las máquinas por nombre.
func (r *MachineRepo) List() ([]*entity.Machine, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, status, last_maintenance, created_at FROM machines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	defer rows.Close()

	var out []*entity.Machine
	for rows.Next() {
		var m entity.Machine
		if err := rows.Scan(&m.ID, &m.Name, &m.Status, &m.LastMaintenance, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan machine: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// Update actualiza una máquina.
func (r *MachineRepo) Update(m *entity.Machine) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE machines SET name = $2, status = $3, last_maintenance = $4 WHERE id = $1`,
		m.ID, m.Name, m.Status, m.LastMaintenance)
	if err != nil {
		return fmt.Errorf("update machine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una máquina.
func (r *MachineRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM machines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete machine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
