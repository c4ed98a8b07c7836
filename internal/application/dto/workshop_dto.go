package dto

import (
	"time"

	"github.com/pukassein/teysa/internal/domain/entity"
)

// ── Funcionarios ──────────────────────────────────────────────────────────────

// WorkerRequest entrada de alta o edición de funcionario.
type WorkerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Shift string `json:"shift" validate:"required"`
}

// WorkerResponse salida de un funcionario.
type WorkerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Shift     string    `json:"shift"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkerFromEntity mapea la entidad a la respuesta.
func WorkerFromEntity(w *entity.Worker) WorkerResponse {
	return WorkerResponse{ID: w.ID, Name: w.Name, Shift: w.Shift, CreatedAt: w.CreatedAt}
}

// ── Tareas ────────────────────────────────────────────────────────────────────

// TaskRequest entrada de alta o edición de tarea.
type TaskRequest struct {
	Title         string   `json:"title" validate:"required,min=1,max=300"`
	WorkerIDs     []string `json:"worker_ids"`
	EstimatedTime float64  `json:"estimated_time"` // horas
}

// TaskStatusRequest cambio de estado de tarea.
type TaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// TaskArchiveRequest archivado o desarchivado de tarea.
type TaskArchiveRequest struct {
	Archived bool `json:"archived"`
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	WorkerIDs     []string   `json:"worker_ids"`
	EstimatedTime float64    `json:"estimated_time"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Status        string     `json:"status"`
	IsArchived    bool       `json:"is_archived"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TaskFromEntity mapea la entidad a la respuesta.
func TaskFromEntity(t *entity.Task) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		Title:         t.Title,
		WorkerIDs:     t.WorkerIDs,
		EstimatedTime: t.EstimatedTime,
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		Status:        t.Status,
		IsArchived:    t.IsArchived,
		CreatedAt:     t.CreatedAt,
	}
}

// TaskCommentRequest entrada de comentario de tarea.
type TaskCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1"`
}

// TaskCommentResponse salida de un comentario.
type TaskCommentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	AuthorID  string    `json:"author_id,omitempty"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCommentFromEntity mapea la entidad a la respuesta.
func TaskCommentFromEntity(c *entity.TaskComment) TaskCommentResponse {
	return TaskCommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt,
	}
}

// ── Máquinas ──────────────────────────────────────────────────────────────────

// MachineRequest entrada de alta o edición de máquina. LastMaintenance en
// formato YYYY-MM-DD.
type MachineRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Status          string `json:"status" validate:"required"`
	LastMaintenance string `json:"last_maintenance"`
}

// MachineResponse salida de una máquina.
type MachineResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	LastMaintenance string    `json:"last_maintenance"`
	CreatedAt       time.Time `json:"created_at"`
}

// MachineFromEntity mapea la entidad a la respuesta.
func MachineFromEntity(m *entity.Machine) MachineResponse {
	last := ""
	if !m.LastMaintenance.IsZero() {
		last = m.LastMaintenance.Format("2006-01-02")
	}
	return MachineResponse{
		ID:              m.ID,
		Name:            m.Name,
		Status:          m.Status,
		LastMaintenance: last,
		CreatedAt:       m.CreatedAt,
	}
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// SupplierRequest entrada de alta o edición de proveedor.
type SupplierRequest struct {
	CompanyName    string `json:"company_name" validate:"required,min=1,max=200"`
	Location       string `json:"location"`
	PhoneNumber    string `json:"phone_number"`
	ContactPerson  string `json:"contact_person"`
	SuppliesDetail string `json:"supplies_detail"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID             string    `json:"id"`
	CompanyName    string    `json:"company_name"`
	Location       string    `json:"location"`
	PhoneNumber    string    `json:"phone_number"`
	ContactPerson  string    `json:"contact_person"`
	SuppliesDetail string    `json:"supplies_detail"`
	CreatedAt      time.Time `json:"created_at"`
}

// SupplierFromEntity mapea la entidad a la respuesta.
func SupplierFromEntity(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:             s.ID,
		CompanyName:    s.CompanyName,
		Location:       s.Location,
		PhoneNumber:    s.PhoneNumber,
		ContactPerson:  s.ContactPerson,
		SuppliesDetail: s.SuppliesDetail,
		CreatedAt:      s.CreatedAt,
	}
}
