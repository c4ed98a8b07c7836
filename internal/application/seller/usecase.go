// Package seller implementa el sub-libro de stock por vendedor ambulante.
// Las tres operaciones (Carga, Venta, Devolución) preservan la invariante de
// conservación: la suma central + vendedores solo cambia con una Venta.
package seller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/application/ledger"
	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
	"github.com/pukassein/teysa/pkg/logger"
)

// MovementListLimit tope de movimientos de vendedor listados.
const MovementListLimit = 100

// UseCase casos de uso de vendedores: CRUD y las tres operaciones del
// sub-libro. Carga y Devolución tocan dos libros sin transacción entre ambos;
// la segunda escritura fallida se compensa revirtiendo la primera.
type UseCase struct {
	stockLedger   *ledger.StockLedger
	sellerRepo    repository.SellerRepository
	inventoryRepo repository.SellerInventoryRepository
	movementRepo  repository.SellerMovementRepository
	log           *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	stockLedger *ledger.StockLedger,
	sellerRepo repository.SellerRepository,
	inventoryRepo repository.SellerInventoryRepository,
	movementRepo repository.SellerMovementRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		stockLedger:   stockLedger,
		sellerRepo:    sellerRepo,
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
		log:           log,
	}
}

// ── CRUD ──────────────────────────────────────────────────────────────────────

// CreateSeller da de alta un vendedor.
func (uc *UseCase) CreateSeller(ctx context.Context, name string) (*entity.Seller, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Seller{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.sellerRepo.Create(s); err != nil {
		return nil, fmt.Errorf("crear vendedor: %w", err)
	}
	return s, nil
}

// GetSeller retorna un vendedor por id.
func (uc *UseCase) GetSeller(ctx context.Context, id string) (*entity.Seller, error) {
	s, err := uc.sellerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// ListSellers lista los vendedores.
func (uc *UseCase) ListSellers(ctx context.Context) ([]*entity.Seller, error) {
	return uc.sellerRepo.List()
}

// DeleteSeller elimina un vendedor. Rechaza si aún tiene stock en su camión:
// borrar stock en tránsito rompería la conservación.
func (uc *UseCase) DeleteSeller(ctx context.Context, id string) error {
	rows, err := uc.inventoryRepo.ListBySeller(id)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Quantity.GreaterThan(decimal.Zero) {
			return fmt.Errorf("el vendedor aún tiene stock asignado: %w", domain.ErrInvalidInput)
		}
	}
	return uc.sellerRepo.Delete(id)
}

// ListInventory lista el stock en poder de un vendedor.
func (uc *UseCase) ListInventory(ctx context.Context, sellerID string) ([]*entity.SellerInventory, error) {
	return uc.inventoryRepo.ListBySeller(sellerID)
}

// ListMovements lista la auditoría reciente de un vendedor.
func (uc *UseCase) ListMovements(ctx context.Context, sellerID string) ([]*entity.SellerMovement, error) {
	return uc.movementRepo.ListBySeller(sellerID, MovementListLimit)
}

// ── Operaciones del sub-libro ─────────────────────────────────────────────────

// Carga traslada quantity unidades del almacén central al camión del
// vendedor. Primero la Salida central (rechaza stock insuficiente), luego el
// alta o incremento en el sub-libro; si el sub-libro falla, la Salida central
// se revierte.
func (uc *UseCase) Carga(ctx context.Context, sellerID, inventoryID string, quantity decimal.Decimal) error {
	if !quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	s, err := uc.sellerRepo.GetByID(sellerID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}

	if _, err := uc.stockLedger.ApplyDelta(ctx, ledger.DeltaInput{
		InventoryID:    inventoryID,
		Delta:          quantity.Neg(),
		Reason:         "Carga a Vendedor: " + s.Name,
		RejectNegative: true,
	}); err != nil {
		return fmt.Errorf("salida central por carga: %w", err)
	}

	if err := uc.addToSeller(sellerID, inventoryID, quantity); err != nil {
		// Devolver el stock al central.
		if _, compErr := uc.stockLedger.ApplyDelta(ctx, ledger.DeltaInput{
			InventoryID: inventoryID,
			Delta:       quantity,
			Reason:      "Reversión carga a Vendedor: " + s.Name,
		}); compErr != nil {
			uc.log.Error().Str("seller_id", sellerID).Str("inventory_id", inventoryID).
				Err(compErr).Msg("reversión de carga fallida: stock central descontado sin llegar al vendedor")
			return &domain.PartialConsistencyError{
				Table: "seller_inventory", RowID: sellerID + "/" + inventoryID,
				Delta: quantity, Cause: compErr,
			}
		}
		return fmt.Errorf("cargar inventario del vendedor: %w", err)
	}

	uc.audit(sellerID, inventoryID, entity.SellerCarga, quantity, "")
	return nil
}

// Venta descuenta quantity unidades del camión del vendedor: el stock sale
// del sistema. Solo toca el sub-libro; el central no interviene.
func (uc *UseCase) Venta(ctx context.Context, sellerID, inventoryID string, quantity decimal.Decimal, notes string) error {
	if !quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if err := uc.removeFromSeller(sellerID, inventoryID, quantity); err != nil {
		return err
	}
	uc.audit(sellerID, inventoryID, entity.SellerVenta, quantity, notes)
	return nil
}

// Devolucion traslada quantity unidades del camión del vendedor de vuelta al
// almacén central. Primero descuenta al vendedor (rechaza stock
// insuficiente), luego la Entrada central; si el central falla, el descuento
// al vendedor se revierte.
func (uc *UseCase) Devolucion(ctx context.Context, sellerID, inventoryID string, quantity decimal.Decimal) error {
	if !quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	s, err := uc.sellerRepo.GetByID(sellerID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}

	if err := uc.removeFromSeller(sellerID, inventoryID, quantity); err != nil {
		return err
	}

	if _, err := uc.stockLedger.ApplyDelta(ctx, ledger.DeltaInput{
		InventoryID: inventoryID,
		Delta:       quantity,
		Reason:      "Devolución de Vendedor: " + s.Name,
	}); err != nil {
		// Restituir al vendedor lo ya descontado.
		if compErr := uc.addToSeller(sellerID, inventoryID, quantity); compErr != nil {
			uc.log.Error().Str("seller_id", sellerID).Str("inventory_id", inventoryID).
				Err(compErr).Msg("reversión de devolución fallida: stock descontado al vendedor sin entrar al central")
			return &domain.PartialConsistencyError{
				Table: "inventory", RowID: inventoryID, Delta: quantity, Cause: compErr,
			}
		}
		return fmt.Errorf("entrada central por devolución: %w", err)
	}

	uc.audit(sellerID, inventoryID, entity.SellerDevolucion, quantity, "")
	return nil
}

// addToSeller incrementa (o crea) la fila del sub-libro vía CAS.
func (uc *UseCase) addToSeller(sellerID, inventoryID string, quantity decimal.Decimal) error {
	row, err := uc.inventoryRepo.GetBySellerAndItem(sellerID, inventoryID)
	if err != nil {
		return err
	}
	if row == nil {
		return uc.inventoryRepo.Create(&entity.SellerInventory{
			ID:          uuid.New().String(),
			SellerID:    sellerID,
			InventoryID: inventoryID,
			Quantity:    quantity,
			LastUpdated: time.Now(),
		})
	}
	return uc.inventoryRepo.UpdateQuantityCAS(row.ID, row.Quantity, row.Quantity.Add(quantity))
}

// removeFromSeller descuenta vía CAS, rechazando stock insuficiente.
func (uc *UseCase) removeFromSeller(sellerID, inventoryID string, quantity decimal.Decimal) error {
	row, err := uc.inventoryRepo.GetBySellerAndItem(sellerID, inventoryID)
	if err != nil {
		return err
	}
	if row == nil || row.Quantity.LessThan(quantity) {
		return fmt.Errorf("el vendedor no tiene stock suficiente: %w", domain.ErrInsufficientStock)
	}
	return uc.inventoryRepo.UpdateQuantityCAS(row.ID, row.Quantity, row.Quantity.Sub(quantity))
}

// audit registra el movimiento del vendedor. Auditoría secundaria: un fallo
// se advierte y no revierte la operación.
func (uc *UseCase) audit(sellerID, inventoryID, movType string, quantity decimal.Decimal, notes string) {
	m := &entity.SellerMovement{
		ID:          uuid.New().String(),
		SellerID:    sellerID,
		InventoryID: inventoryID,
		Type:        movType,
		Quantity:    quantity,
		Notes:       notes,
		CreatedAt:   time.Now(),
	}
	if err := uc.movementRepo.Create(m); err != nil {
		uc.log.Warn().Str("seller_id", sellerID).Str("tipo", movType).Err(err).
			Msg("no se pudo auditar el movimiento del vendedor")
	}
}
