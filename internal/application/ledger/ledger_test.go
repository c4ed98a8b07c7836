package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pukassein/teysa/internal/application/ledger"
	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.InventoryItem
	// failCAS fuerza el fallo de UpdateQuantityCAS a partir de la llamada
	// indicada (1-based); 0 desactiva el fallo.
	failCAS     int
	casAttempts int
}

func newFakeItemRepo(items ...*entity.InventoryItem) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[string]*entity.InventoryItem)}
	for _, it := range items {
		copied := *it
		r.items[it.ID] = &copied
	}
	return r
}

func (r *fakeItemRepo) Create(item *entity.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *it
	return &copied, nil
}

func (r *fakeItemRepo) List() ([]*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.InventoryItem
	for _, it := range r.items {
		copied := *it
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeItemRepo) ListByCategory(category string) ([]*entity.InventoryItem, error) {
	all, _ := r.List()
	var out []*entity.InventoryItem
	for _, it := range all {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(item *entity.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	qty := existing.Quantity
	copied := *item
	copied.Quantity = qty
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) UpdateQuantityCAS(id string, expected, newQty decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.casAttempts++
	if r.failCAS > 0 && r.casAttempts >= r.failCAS {
		return errors.New("almacén caído")
	}
	it, ok := r.items[id]
	if !ok {
		return domain.ErrConflict
	}
	if !it.Quantity.Equal(expected) {
		return domain.ErrConflict
	}
	it.Quantity = newQty
	return nil
}

func (r *fakeItemRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	all, _ := r.List()
	var out []*entity.InventoryItem
	for _, it := range all {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) quantity(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	it, err := r.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity
}

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.InventoryMovement
	// failCreate / failDelete / failSetCancelled fuerzan el fallo de la
	// operación correspondiente.
	failCreate       bool
	failDelete       bool
	failSetCancelled bool
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("insert de movimiento rechazado")
	}
	copied := *m
	r.movements = append(r.movements, &copied)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movements {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListRecent(limit int) ([]*entity.InventoryMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.InventoryMovement, 0, len(r.movements))
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		copied := *r.movements[i]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByItem(inventoryID string, limit int) ([]*entity.InventoryMovement, error) {
	all, _ := r.ListRecent(limit)
	var out []*entity.InventoryMovement
	for _, m := range all {
		if m.InventoryID == inventoryID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) SetCancelled(id string, cancelled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSetCancelled {
		return errors.New("update de cancelación rechazado")
	}
	for _, m := range r.movements {
		if m.ID == id {
			m.IsCancelled = cancelled
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeMovementRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete {
		return errors.New("delete de movimiento rechazado")
	}
	for i, m := range r.movements {
		if m.ID == id {
			r.movements = append(r.movements[:i], r.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeMovementRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.movements)
}

func newItem(id, name string, qty int64) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:       id,
		Name:     name,
		Category: entity.CategoryRawMaterial,
		Quantity: decimal.NewFromInt(qty),
		Unit:     "unidades",
		Brand:    entity.BrandGenerica,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDelta y cancelación: el ciclo completo de un ajuste de stock
// ──────────────────────────────────────────────────────────────────────────────

// Tornillos con 100 unidades: una Salida de 30 deja 70; la cancelación del
// movimiento restaura 100 y marca la fila como cancelada sin borrarla.
func TestApplyDelta_SalidaYCancelacionRestauran(t *testing.T) {
	items := newFakeItemRepo(newItem("tornillos", "Tornillos", 100))
	movs := &fakeMovementRepo{}
	l := ledger.NewStockLedger(items, movs, logger.Nop())
	ctx := context.Background()

	mov, err := l.ApplyDelta(ctx, ledger.DeltaInput{
		InventoryID: "tornillos",
		Delta:       dec("-30"),
		Reason:      "ajuste por conteo",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementSalida, mov.Type)
	assert.True(t, items.quantity(t, "tornillos").Equal(dec("70")), "100 - 30 = 70")

	require.NoError(t, l.CancelMovement(ctx, mov.ID))
	assert.True(t, items.quantity(t, "tornillos").Equal(dec("100")), "cancelar restaura la cantidad original")

	cancelled, err := movs.GetByID(mov.ID)
	require.NoError(t, err)
	require.NotNil(t, cancelled, "el movimiento cancelado se conserva en el historial")
	assert.True(t, cancelled.IsCancelled)
}

func TestCancelMovement_DobleCancelacionRechazada(t *testing.T) {
	items := newFakeItemRepo(newItem("tornillos", "Tornillos", 100))
	movs := &fakeMovementRepo{}
	l := ledger.NewStockLedger(items, movs, logger.Nop())
	ctx := context.Background()

	mov, err := l.ApplyDelta(ctx, ledger.DeltaInput{InventoryID: "tornillos", Delta: dec("-30")})
	require.NoError(t, err)
	require.NoError(t, l.CancelMovement(ctx, mov.ID))

	err = l.CancelMovement(ctx, mov.ID)
	require.ErrorIs(t, err, domain.ErrMovementCancelled)
	assert.True(t, items.quantity(t, "tornillos").Equal(dec("100")), "el delta inverso no se aplica dos veces")
}

func TestApplyDelta_RejectNegative(t *testing.T) {
	items := newFakeItemRepo(newItem("cerdas", "Cerdas PET", 5))
	l := ledger.NewStockLedger(items, &fakeMovementRepo{}, logger.Nop())

	_, err := l.ApplyDelta(context.Background(), ledger.DeltaInput{
		InventoryID:    "cerdas",
		Delta:          dec("-8"),
		RejectNegative: true,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, items.quantity(t, "cerdas").Equal(dec("5")), "el rechazo no toca el stock")
}

// Las ediciones correctivas permiten quedar en negativo cuando RejectNegative
// está apagado.
func TestApplyDelta_NegativoPermitidoSinRechazo(t *testing.T) {
	items := newFakeItemRepo(newItem("cerdas", "Cerdas PET", 5))
	l := ledger.NewStockLedger(items, &fakeMovementRepo{}, logger.Nop())

	_, err := l.ApplyDelta(context.Background(), ledger.DeltaInput{
		InventoryID: "cerdas",
		Delta:       dec("-8"),
	})
	require.NoError(t, err)
	assert.True(t, items.quantity(t, "cerdas").Equal(dec("-3")))
}

func TestApplyDelta_DeltaCeroInvalido(t *testing.T) {
	items := newFakeItemRepo(newItem("x", "X", 10))
	l := ledger.NewStockLedger(items, &fakeMovementRepo{}, logger.Nop())

	_, err := l.ApplyDelta(context.Background(), ledger.DeltaInput{InventoryID: "x", Delta: decimal.Zero})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Invariante del libro: tras cualquier secuencia de operaciones, cantidad
// vigente = cantidad inicial + Σ deltas de movimientos no cancelados.
func TestLedger_InvarianteCantidadContraHistorial(t *testing.T) {
	items := newFakeItemRepo(newItem("mango", "Mango de Madera", 50))
	movs := &fakeMovementRepo{}
	l := ledger.NewStockLedger(items, movs, logger.Nop())
	ctx := context.Background()

	deltas := []string{"10", "-7", "3.5", "-12", "20"}
	var created []*entity.InventoryMovement
	for _, d := range deltas {
		mov, err := l.ApplyDelta(ctx, ledger.DeltaInput{InventoryID: "mango", Delta: dec(d)})
		require.NoError(t, err)
		created = append(created, mov)
	}
	require.NoError(t, l.CancelMovement(ctx, created[1].ID))
	require.NoError(t, l.CancelMovement(ctx, created[3].ID))

	history, err := movs.ListByItem("mango", 100)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, m := range history {
		if !m.IsCancelled {
			sum = sum.Add(m.QuantityChange)
		}
	}
	expected := dec("50").Add(sum)
	assert.True(t, items.quantity(t, "mango").Equal(expected),
		"cantidad vigente = inicial + Σ deltas no cancelados")
}

// ──────────────────────────────────────────────────────────────────────────────
// Compensación: cada variante revierte en el orden correcto
// ──────────────────────────────────────────────────────────────────────────────

// ApplyDelta escribe cantidad y luego movimiento: si el insert del movimiento
// falla, la cantidad vuelve a su valor anterior y el historial queda vacío.
func TestApplyDelta_CompensaCantidadSiMovimientoFalla(t *testing.T) {
	items := newFakeItemRepo(newItem("tornillos", "Tornillos", 100))
	movs := &fakeMovementRepo{failCreate: true}
	l := ledger.NewStockLedger(items, movs, logger.Nop())

	_, err := l.ApplyDelta(context.Background(), ledger.DeltaInput{InventoryID: "tornillos", Delta: dec("-30")})
	require.Error(t, err)
	assert.False(t, domain.IsPartialConsistency(err), "la compensación exitosa no es inconsistencia")
	assert.True(t, items.quantity(t, "tornillos").Equal(dec("100")), "cantidad revertida")
	assert.Zero(t, movs.count(), "sin movimiento huérfano")
}

// Si además falla la reversión de cantidad, la operación queda Abandonada y
// el error nombra tabla, fila y delta pendiente.
func TestApplyDelta_AbandonadaSiCompensacionFalla(t *testing.T) {
	items := newFakeItemRepo(newItem("tornillos", "Tornillos", 100))
	// Primera CAS (aplicar) pasa; segunda (revertir) falla.
	items.failCAS = 2
	movs := &fakeMovementRepo{failCreate: true}
	l := ledger.NewStockLedger(items, movs, logger.Nop())

	_, err := l.ApplyDelta(context.Background(), ledger.DeltaInput{InventoryID: "tornillos", Delta: dec("-30")})
	require.Error(t, err)
	require.True(t, domain.IsPartialConsistency(err))

	var pce *domain.PartialConsistencyError
	require.ErrorAs(t, err, &pce)
	assert.Equal(t, "inventory", pce.Table)
	assert.Equal(t, "tornillos", pce.RowID)
	assert.True(t, pce.Delta.Equal(dec("30")), "delta pendiente de aplicar para reconciliar")
}

// RegisterMovement escribe movimiento y luego cantidad: si la cantidad falla,
// el movimiento recién insertado se borra.
func TestRegisterMovement_CompensaBorrandoMovimiento(t *testing.T) {
	items := newFakeItemRepo(newItem("tornillos", "Tornillos", 100))
	items.failCAS = 1
	movs := &fakeMovementRepo{}
	l := ledger.NewStockLedger(items, movs, logger.Nop())

	_, err := l.RegisterMovement(context.Background(), ledger.DeltaInput{InventoryID: "tornillos", Delta: dec("15")})
	require.Error(t, err)
	assert.False(t, domain.IsPartialConsistency(err))
	assert.Zero(t, movs.count(), "el movimiento insertado se borró como compensación")
	assert.True(t, items.quantity(t, "tornillos").Equal(dec("100")))
}

func TestRegisterMovement_AbandonadaSiBorradoFalla(t *testing.T) {
	items := newFakeItemRepo(newItem("tornillos", "Tornillos", 100))
	items.failCAS = 1
	movs := &fakeMovementRepo{failDelete: true}
	l := ledger.NewStockLedger(items, movs, logger.Nop())

	_, err := l.RegisterMovement(context.Background(), ledger.DeltaInput{InventoryID: "tornillos", Delta: dec("15")})
	require.Error(t, err)
	require.True(t, domain.IsPartialConsistency(err))

	var pce *domain.PartialConsistencyError
	require.ErrorAs(t, err, &pce)
	assert.Equal(t, "inventory_movements", pce.Table)
	assert.Equal(t, 1, movs.count(), "el movimiento huérfano queda registrado para corrección manual")
}

// CancelMovement revierte cantidad y luego marca cancelado: si el marcado
// falla, la cantidad vuelve a su valor previo y el movimiento sigue activo.
func TestCancelMovement_DeshaceReversionSiMarcadoFalla(t *testing.T) {
	items := newFakeItemRepo(newItem("tornillos", "Tornillos", 100))
	movs := &fakeMovementRepo{}
	l := ledger.NewStockLedger(items, movs, logger.Nop())
	ctx := context.Background()

	mov, err := l.ApplyDelta(ctx, ledger.DeltaInput{InventoryID: "tornillos", Delta: dec("-30")})
	require.NoError(t, err)

	movs.failSetCancelled = true
	err = l.CancelMovement(ctx, mov.ID)
	require.Error(t, err)
	assert.False(t, domain.IsPartialConsistency(err))
	assert.True(t, items.quantity(t, "tornillos").Equal(dec("70")), "la reversión se deshizo")

	active, err := movs.GetByID(mov.ID)
	require.NoError(t, err)
	assert.False(t, active.IsCancelled, "el movimiento sigue activo")
}

// Concurrencia optimista: un delta calculado sobre una lectura vieja pierde
// la carrera y se rechaza con ErrConflict sin tocar el stock.
func TestApplyDelta_ConflictoOptimista(t *testing.T) {
	items := newFakeItemRepo(newItem("tornillos", "Tornillos", 100))
	movs := &fakeMovementRepo{}
	l := ledger.NewStockLedger(items, movs, logger.Nop())

	// Simular que otra sesión ganó entre la lectura y la escritura.
	require.NoError(t, items.UpdateQuantityCAS("tornillos", dec("100"), dec("90")))
	err := items.UpdateQuantityCAS("tornillos", dec("100"), dec("70"))
	require.ErrorIs(t, err, domain.ErrConflict)

	// La vía normal sigue funcionando después del conflicto.
	_, err = l.ApplyDelta(context.Background(), ledger.DeltaInput{InventoryID: "tornillos", Delta: dec("-20")})
	require.NoError(t, err)
	assert.True(t, items.quantity(t, "tornillos").Equal(dec("70")))
}
