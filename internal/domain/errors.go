package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrMovementCancelled  = errors.New("el movimiento ya está cancelado")
	ErrNoRecipe           = errors.New("el producto no tiene receta definida")
)

// PartialConsistencyError señala que una acción compensatoria falló y una
// operación compuesta quedó en estado Abandonado. Nombra tabla, fila y delta
// pendiente para que un operador pueda corregir manualmente. Nunca debe
// ocultarse tras un mensaje genérico.
type PartialConsistencyError struct {
	Table string
	RowID string
	Delta decimal.Decimal
	Cause error
}

func (e *PartialConsistencyError) Error() string {
	return fmt.Sprintf("inconsistencia parcial en %s (fila %s, delta %s): %v",
		e.Table, e.RowID, e.Delta.String(), e.Cause)
}

func (e *PartialConsistencyError) Unwrap() error { return e.Cause }

// IsPartialConsistency indica si err (o su cadena) contiene una inconsistencia parcial.
func IsPartialConsistency(err error) bool {
	var pce *PartialConsistencyError
	return errors.As(err, &pce)
}
