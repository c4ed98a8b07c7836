package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
)

// Razones de los movimientos sintéticos generados por el propio libro.
const (
	reasonInitialStock = "Inventario inicial"
	reasonManualAdjust = "Ajuste manual de artículo"
)

// ItemInput datos de alta/edición de un artículo de inventario.
type ItemInput struct {
	Name              string
	Category          string
	Quantity          decimal.Decimal
	LowStockThreshold decimal.Decimal
	Unit              string
	Brand             string
}

func (in ItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || in.Unit == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidCategory(in.Category) || !entity.ValidBrand(in.Brand) {
		return domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() || in.LowStockThreshold.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// CreateItem da de alta un artículo. Si la cantidad inicial es mayor que
// cero, siembra un movimiento Entrada para que el libro quede reconciliado
// desde el primer día. El fallo del movimiento semilla no revierte el alta:
// se prioriza el stock sobre la auditoría y se devuelve la advertencia.
func (l *StockLedger) CreateItem(ctx context.Context, in ItemInput) (*entity.InventoryItem, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(in.Name),
		Category:          in.Category,
		Quantity:          in.Quantity,
		LowStockThreshold: in.LowStockThreshold,
		Unit:              in.Unit,
		Brand:             in.Brand,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := l.itemRepo.Create(item); err != nil {
		return nil, "", fmt.Errorf("crear artículo: %w", err)
	}

	var warning string
	if in.Quantity.GreaterThan(decimal.Zero) {
		mov := newMovement(item.ID, in.Quantity, reasonInitialStock)
		if err := l.movRepo.Create(mov); err != nil {
			warning = "artículo creado pero no se pudo registrar el movimiento inicial; el historial quedará incompleto"
			l.log.Warn().Str("inventory_id", item.ID).Err(err).Msg("movimiento inicial no registrado")
		}
	}
	return item, warning, nil
}

// UpdateItem edita un artículo. Si la edición implica un cambio de cantidad,
// genera un movimiento sintético de ajuste después de persistir la cantidad.
// Las ediciones correctivas pueden dejar cantidades que una Salida normal
// rechazaría; por eso aquí no se valida stock suficiente. Si el movimiento
// sintético falla, la cantidad NO se revierte: se advierte que la auditoría
// quedó incompleta. El stock corregido vale más que el historial.
func (l *StockLedger) UpdateItem(ctx context.Context, id string, in ItemInput) (*entity.InventoryItem, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}
	item, err := l.itemRepo.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if item == nil {
		return nil, "", domain.ErrNotFound
	}

	delta := in.Quantity.Sub(item.Quantity)
	previous := item.Quantity

	item.Name = strings.TrimSpace(in.Name)
	item.Category = in.Category
	item.LowStockThreshold = in.LowStockThreshold
	item.Unit = in.Unit
	item.Brand = in.Brand
	item.UpdatedAt = time.Now()
	if err := l.itemRepo.Update(item); err != nil {
		return nil, "", fmt.Errorf("actualizar artículo: %w", err)
	}

	var warning string
	if !delta.IsZero() {
		if err := l.itemRepo.UpdateQuantityCAS(item.ID, previous, in.Quantity); err != nil {
			return nil, "", fmt.Errorf("actualizar cantidad de %s: %w", item.ID, err)
		}
		item.Quantity = in.Quantity
		mov := newMovement(item.ID, delta, reasonManualAdjust)
		if err := l.movRepo.Create(mov); err != nil {
			warning = "cantidad actualizada pero no se pudo registrar el movimiento de ajuste; el historial quedará incompleto"
			l.log.Warn().Str("inventory_id", item.ID).Err(err).Msg("movimiento de ajuste no registrado")
		}
	}
	return item, warning, nil
}

// GetItem obtiene un artículo por ID.
func (l *StockLedger) GetItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := l.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// DeleteItem borra un artículo. Los movimientos históricos no se borran en
// cascada; quedan huérfanos a propósito para conservar la auditoría.
func (l *StockLedger) DeleteItem(ctx context.Context, id string) error {
	return l.itemRepo.Delete(id)
}

// ListItems lista artículos, opcionalmente filtrados por búsqueda
// insensible a tildes y mayúsculas ("cafe" encuentra "Café").
func (l *StockLedger) ListItems(ctx context.Context, search string) ([]*entity.InventoryItem, error) {
	items, err := l.itemRepo.List()
	if err != nil {
		return nil, err
	}
	if search == "" {
		return items, nil
	}
	q := normalizeSearch(search)
	var out []*entity.InventoryItem
	for _, it := range items {
		if strings.Contains(normalizeSearch(it.Name), q) {
			out = append(out, it)
		}
	}
	return out, nil
}

// ListLowStock lista artículos por debajo de su umbral.
func (l *StockLedger) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	return l.itemRepo.ListLowStock()
}

var searchNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeSearch elimina marcas diacríticas y pasa a minúsculas.
func normalizeSearch(s string) string {
	out, _, err := transform.String(searchNormalizer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
