package entity

import "time"

// Estados de máquina.
const (
	MachineDisponible    = "Disponible"
	MachineMantenimiento = "Mantenimiento"
	MachineInactivo      = "Inactivo"
)

// Machine es una máquina de planta.
type Machine struct {
	ID              string
	Name            string
	Status          string
	LastMaintenance time.Time
	CreatedAt       time.Time
}
