package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro central de inventario.
const (
	MovementEntrada = "Entrada" // delta positivo
	MovementSalida  = "Salida"  // delta negativo
)

// MovementTypeFor devuelve el tipo acorde al signo del delta.
func MovementTypeFor(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return MovementSalida
	}
	return MovementEntrada
}

// InventoryMovement es un registro de auditoría de cada cambio de cantidad.
// Nunca se borra físicamente: cancelar un movimiento aplica el delta inverso
// sobre el artículo y marca IsCancelled, preservando el historial.
type InventoryMovement struct {
	ID             string
	InventoryID    string
	QuantityChange decimal.Decimal // positivo = Entrada, negativo = Salida
	Type           string          // Entrada | Salida, acorde al signo
	Reason         string
	IsCancelled    bool
	CreatedAt      time.Time
}
