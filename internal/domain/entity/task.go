package entity

import "time"

// Estados de una tarea.
const (
	TaskPendiente = "Pendiente"
	TaskEnProceso = "En Proceso"
	TaskTerminado = "Terminado"
	TaskBloqueado = "Bloqueado"
)

// Task es una tarea de planta asignable a uno o más funcionarios.
// EstimatedTime está en horas; StartTime/EndTime marcan la ejecución real.
type Task struct {
	ID            string
	Title         string
	WorkerIDs     []string
	EstimatedTime float64 // horas
	StartTime     *time.Time
	EndTime       *time.Time
	Status        string
	IsArchived    bool
	CreatedAt     time.Time
}

// TaskComment es un comentario sobre una tarea. AuthorID puede ser vacío
// (comentario del sistema o autor eliminado).
type TaskComment struct {
	ID        string
	TaskID    string
	AuthorID  string
	Comment   string
	CreatedAt time.Time
}
