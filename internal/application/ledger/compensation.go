package ledger

// CompensationState es el estado de una operación compuesta multi-escritura
// sobre un almacén sin transacciones entre filas. La atomicidad es solo de
// intención: se garantiza por orden de escrituras + acción compensatoria.
type CompensationState int

const (
	// StateStarted ninguna escritura emitida todavía.
	StateStarted CompensationState = iota
	// StatePartiallyApplied al menos una escritura aplicada, al menos una
	// pendiente o fallida.
	StatePartiallyApplied
	// StateReconciled todas las escrituras aplicadas, o las ya aplicadas
	// fueron revertidas con éxito tras un fallo aguas abajo.
	StateReconciled
	// StateAbandoned una escritura compensatoria falló; terminal. Debe
	// aflorar con detalle (tabla, fila, delta) para corrección manual.
	StateAbandoned
)

func (s CompensationState) String() string {
	switch s {
	case StateStarted:
		return "iniciada"
	case StatePartiallyApplied:
		return "parcialmente aplicada"
	case StateReconciled:
		return "reconciliada"
	case StateAbandoned:
		return "abandonada"
	}
	return "desconocida"
}

// Compensation sigue el ciclo Started → PartiallyApplied → {Reconciled |
// Abandoned} de una operación compuesta concreta.
type Compensation struct {
	state CompensationState
}

// NewCompensation inicia el seguimiento de una operación compuesta.
func NewCompensation() *Compensation {
	return &Compensation{state: StateStarted}
}

// Applied marca que una escritura del conjunto se aplicó.
func (c *Compensation) Applied() {
	if c.state == StateStarted {
		c.state = StatePartiallyApplied
	}
}

// Reconcile marca la operación como consistente (camino feliz o reversión
// compensatoria exitosa).
func (c *Compensation) Reconcile() {
	if c.state != StateAbandoned {
		c.state = StateReconciled
	}
}

// Abandon marca el estado terminal: una compensación falló.
func (c *Compensation) Abandon() {
	c.state = StateAbandoned
}

// State devuelve el estado vigente.
func (c *Compensation) State() CompensationState {
	return c.state
}
