// Package ledger implementa el libro de stock central: la invariante
// "cantidad vigente = cantidad inicial + Σ deltas de movimientos no
// cancelados" para cada artículo de inventario. Consolida la aritmética de
// cantidades que antes estaba duplicada en cada formulario (edición de
// artículo, movimientos, registro de producción, camión de vendedor).
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
	"github.com/pukassein/teysa/pkg/logger"
)

// MovementListLimit tope de movimientos listados (display).
const MovementListLimit = 100

// StockLedger casos de uso sobre el libro central. Toda mutación de cantidad
// pasa por aquí y queda reflejada exactamente una vez en el historial.
type StockLedger struct {
	itemRepo repository.InventoryItemRepository
	movRepo  repository.InventoryMovementRepository
	log      *logger.Logger
}

// NewStockLedger construye el caso de uso.
func NewStockLedger(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
	log *logger.Logger,
) *StockLedger {
	return &StockLedger{itemRepo: itemRepo, movRepo: movRepo, log: log}
}

// DeltaInput entrada para aplicar un cambio de cantidad sobre un artículo.
type DeltaInput struct {
	InventoryID string
	Delta       decimal.Decimal // positivo = Entrada, negativo = Salida
	Reason      string
	// RejectNegative activa el rechazo con ErrInsufficientStock cuando una
	// Salida dejaría la cantidad negativa. Las ediciones manuales correctivas
	// lo dejan en false a propósito.
	RejectNegative bool
}

// CurrentQuantity devuelve la cantidad vigente de un artículo.
func (l *StockLedger) CurrentQuantity(ctx context.Context, itemID string) (decimal.Decimal, error) {
	item, err := l.itemRepo.GetByID(itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return item.Quantity, nil
}

// ApplyDelta aplica un cambio de cantidad con el orden documentado:
// leer → calcular → validar → persistir cantidad (CAS) → insertar movimiento.
// Si el insert del movimiento falla después de persistir la cantidad, se
// revierte la cantidad (compensación); si la reversión también falla, la
// operación queda Abandonada y el error nombra tabla, fila y delta.
func (l *StockLedger) ApplyDelta(ctx context.Context, in DeltaInput) (*entity.InventoryMovement, error) {
	if in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	item, err := l.itemRepo.GetByID(in.InventoryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	newQty := item.Quantity.Add(in.Delta)
	if in.RejectNegative && in.Delta.IsNegative() && newQty.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}

	comp := NewCompensation()
	if err := l.itemRepo.UpdateQuantityCAS(item.ID, item.Quantity, newQty); err != nil {
		return nil, fmt.Errorf("actualizar cantidad de %s: %w", item.ID, err)
	}
	comp.Applied()

	mov := newMovement(item.ID, in.Delta, in.Reason)
	if err := l.movRepo.Create(mov); err != nil {
		// Compensación: revertir la cantidad ya aplicada.
		if compErr := l.itemRepo.UpdateQuantityCAS(item.ID, newQty, item.Quantity); compErr != nil {
			comp.Abandon()
			l.log.Error().Str("inventory_id", item.ID).Str("estado", comp.State().String()).
				Err(compErr).Msg("reversión de cantidad fallida tras movimiento fallido")
			return nil, &domain.PartialConsistencyError{
				Table: "inventory", RowID: item.ID, Delta: in.Delta.Neg(), Cause: compErr,
			}
		}
		comp.Reconcile()
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	comp.Reconcile()
	return mov, nil
}

// RegisterMovement es la variante registra-luego-actualiza usada por el
// formulario de movimientos: inserta primero el movimiento y después la
// cantidad, de modo que la compensación barata es borrar la fila recién
// insertada. El orden de cada variante es deliberado y debe preservarse.
func (l *StockLedger) RegisterMovement(ctx context.Context, in DeltaInput) (*entity.InventoryMovement, error) {
	if in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	item, err := l.itemRepo.GetByID(in.InventoryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	newQty := item.Quantity.Add(in.Delta)
	if in.RejectNegative && in.Delta.IsNegative() && newQty.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}

	comp := NewCompensation()
	mov := newMovement(item.ID, in.Delta, in.Reason)
	if err := l.movRepo.Create(mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	comp.Applied()

	if err := l.itemRepo.UpdateQuantityCAS(item.ID, item.Quantity, newQty); err != nil {
		// Compensación: borrar el movimiento recién insertado.
		if compErr := l.movRepo.Delete(mov.ID); compErr != nil {
			comp.Abandon()
			l.log.Error().Str("movement_id", mov.ID).Str("estado", comp.State().String()).
				Err(compErr).Msg("borrado compensatorio de movimiento fallido")
			return nil, &domain.PartialConsistencyError{
				Table: "inventory_movements", RowID: mov.ID, Delta: in.Delta, Cause: compErr,
			}
		}
		comp.Reconcile()
		return nil, fmt.Errorf("actualizar cantidad de %s: %w", item.ID, err)
	}
	comp.Reconcile()
	return mov, nil
}

// CancelMovement aplica el delta inverso sobre el artículo y después marca el
// movimiento como cancelado. Un movimiento ya cancelado se rechaza con
// ErrMovementCancelled: la cancelación nunca se aplica dos veces. El
// movimiento no se borra físicamente.
func (l *StockLedger) CancelMovement(ctx context.Context, movementID string) error {
	mov, err := l.movRepo.GetByID(movementID)
	if err != nil {
		return err
	}
	if mov == nil {
		return domain.ErrNotFound
	}
	if mov.IsCancelled {
		return domain.ErrMovementCancelled
	}
	item, err := l.itemRepo.GetByID(mov.InventoryID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	reverted := item.Quantity.Sub(mov.QuantityChange)
	comp := NewCompensation()
	if err := l.itemRepo.UpdateQuantityCAS(item.ID, item.Quantity, reverted); err != nil {
		return fmt.Errorf("revertir cantidad de %s: %w", item.ID, err)
	}
	comp.Applied()

	if err := l.movRepo.SetCancelled(mov.ID, true); err != nil {
		// Compensación: deshacer la reversión de stock para no dejar el
		// libro desincronizado con un movimiento todavía activo.
		if compErr := l.itemRepo.UpdateQuantityCAS(item.ID, reverted, item.Quantity); compErr != nil {
			comp.Abandon()
			l.log.Error().Str("movement_id", mov.ID).Str("estado", comp.State().String()).
				Err(compErr).Msg("deshacer reversión fallido al cancelar movimiento")
			return &domain.PartialConsistencyError{
				Table: "inventory", RowID: item.ID, Delta: mov.QuantityChange, Cause: compErr,
			}
		}
		comp.Reconcile()
		return fmt.Errorf("marcar movimiento cancelado: %w", err)
	}
	comp.Reconcile()
	return nil
}

// ListMovements lista movimientos del más reciente al más antiguo, acotado a
// MovementListLimit.
func (l *StockLedger) ListMovements(ctx context.Context) ([]*entity.InventoryMovement, error) {
	return l.movRepo.ListRecent(MovementListLimit)
}

// ListMovementsByItem lista el historial de un artículo.
func (l *StockLedger) ListMovementsByItem(ctx context.Context, inventoryID string) ([]*entity.InventoryMovement, error) {
	return l.movRepo.ListByItem(inventoryID, MovementListLimit)
}

func newMovement(inventoryID string, delta decimal.Decimal, reason string) *entity.InventoryMovement {
	return &entity.InventoryMovement{
		ID:             uuid.New().String(),
		InventoryID:    inventoryID,
		QuantityChange: delta,
		Type:           entity.MovementTypeFor(delta),
		Reason:         reason,
		CreatedAt:      time.Now(),
	}
}
