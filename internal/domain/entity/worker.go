package entity

import "time"

// Turnos de trabajo.
const (
	ShiftManana    = "Mañana"
	ShiftTarde     = "Tarde"
	ShiftNoche     = "Noche"
	ShiftTodoElDia = "Todo el día"
	ShiftPorHora   = "Por hora"
)

// Shifts lista los turnos válidos.
var Shifts = []string{ShiftManana, ShiftTarde, ShiftNoche, ShiftTodoElDia, ShiftPorHora}

// Worker es un funcionario del taller.
type Worker struct {
	ID        string
	Name      string
	Shift     string
	CreatedAt time.Time
}

// ValidShift verifica que el turno pertenezca a la enumeración.
func ValidShift(shift string) bool {
	for _, s := range Shifts {
		if s == shift {
			return true
		}
	}
	return false
}
