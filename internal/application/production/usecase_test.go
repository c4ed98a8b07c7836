package production_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pukassein/teysa/internal/application/ledger"
	"github.com/pukassein/teysa/internal/application/production"
	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
	"github.com/pukassein/teysa/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes adicionales para el caso de uso completo
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.ProductionOrder
	logs   *fakeLogRepo
}

func newFakeOrderRepo(logs *fakeLogRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.ProductionOrder), logs: logs}
}

func (r *fakeOrderRepo) Create(o *entity.ProductionOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *o
	r.orders[o.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) List() ([]*entity.ProductionOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ProductionOrder
	for _, o := range r.orders {
		copied := *o
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id, status string, completedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.CompletedAt = completedAt
	return nil
}

func (r *fakeOrderRepo) SumLoggedQuantity(orderID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, l := range r.logs.list() {
		if l.OrderID == orderID {
			sum = sum.Add(l.Quantity)
		}
	}
	return sum, nil
}

func (r *fakeOrderRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

type fakeLogRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.ProductionLog
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{rows: make(map[string]*entity.ProductionLog)}
}

func (r *fakeLogRepo) Create(l *entity.ProductionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *l
	r.rows[l.ID] = &copied
	return nil
}

func (r *fakeLogRepo) GetByID(id string) (*entity.ProductionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	copied := *l
	return &copied, nil
}

func (r *fakeLogRepo) ListRecent(limit int) ([]*entity.ProductionLog, error) {
	rows := r.list()
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *fakeLogRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *fakeLogRepo) list() []*entity.ProductionLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ProductionLog
	for _, l := range r.rows {
		copied := *l
		out = append(out, &copied)
	}
	return out
}

type fakeWorkerRepo struct {
	workers map[string]*entity.Worker
}

func (r *fakeWorkerRepo) Create(w *entity.Worker) error {
	r.workers[w.ID] = w
	return nil
}

func (r *fakeWorkerRepo) GetByID(id string) (*entity.Worker, error) {
	w, ok := r.workers[id]
	if !ok {
		return nil, nil
	}
	return w, nil
}

func (r *fakeWorkerRepo) List() ([]*entity.Worker, error) { return nil, nil }
func (r *fakeWorkerRepo) Update(*entity.Worker) error     { return nil }
func (r *fakeWorkerRepo) Delete(id string) error {
	delete(r.workers, id)
	return nil
}

// fakeTxRunner ejecuta la función directamente: los fakes en memoria no
// distinguen transacción de llamada directa.
type fakeTxRunner struct {
	productRepo repository.ProductRepository
	recipeRepo  repository.ProductRecipeRepository
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	recipeRepo repository.ProductRecipeRepository,
) error) error {
	return fn(r.productRepo, r.recipeRepo)
}

type usecaseFixture struct {
	uc     *production.UseCase
	items  *fakeItemRepo
	orders *fakeOrderRepo
	logs   *fakeLogRepo
}

// newUsecaseFixture arma el escenario Escoba Modelo A con el caso de uso
// completo encima.
func newUsecaseFixture(cerdasQty, mangosQty string) *usecaseFixture {
	items := newFakeItemRepo(
		newItem("cerdas", entity.CategoryRawMaterial, cerdasQty),
		newItem("mango", entity.CategoryRawMaterial, mangosQty),
		newItem("escoba-a", entity.CategoryFinishedGood, "0"),
	)
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-escoba": {ID: "prod-escoba", Name: "Escoba Modelo A", FinishedProductInventoryID: "escoba-a"},
	}}
	recipes := &fakeRecipeRepo{lines: []*entity.ProductRecipe{
		{ID: "r1", ProductID: "prod-escoba", RawMaterialInventoryID: "cerdas", QuantityRequired: dec("0.5")},
		{ID: "r2", ProductID: "prod-escoba", RawMaterialInventoryID: "mango", QuantityRequired: dec("1")},
	}}
	consumos := &fakeConsumptionRepo{}
	logs := newFakeLogRepo()
	orders := newFakeOrderRepo(logs)
	workers := &fakeWorkerRepo{workers: map[string]*entity.Worker{
		"w1": {ID: "w1", Name: "Ana García", Shift: entity.ShiftManana},
	}}

	stockLedger := ledger.NewStockLedger(items, &fakeMovementRepo{}, logger.Nop())
	resolver := production.NewRecipeResolver(products, recipes)
	engine := production.NewEngine(stockLedger, resolver, consumos, logger.Nop())
	checker := production.NewFeasibilityChecker(resolver, items)
	uc := production.NewUseCase(
		engine, checker, &fakeTxRunner{productRepo: products, recipeRepo: recipes},
		products, recipes, orders, logs, consumos, items, workers, logger.Nop(),
	)
	return &usecaseFixture{uc: uc, items: items, orders: orders, logs: logs}
}

func logInput(orderID string, qty string) production.LogInput {
	return production.LogInput{
		WorkerID:       "w1",
		InventoryID:    "escoba-a",
		OrderID:        orderID,
		Quantity:       dec(qty),
		ProductionDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes: factibilidad y ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_RechazaSinStock(t *testing.T) {
	fx := newUsecaseFixture("100", "100")

	_, result, err := fx.uc.CreateOrder(context.Background(), "prod-escoba", dec("1000"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.NotNil(t, result, "el detalle por material acompaña al rechazo")
	assert.False(t, result.Feasible)
	assert.True(t, result.HasRecipe)
}

func TestCreateOrder_RechazaSinReceta(t *testing.T) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-x": {ID: "prod-x", Name: "X", FinishedProductInventoryID: "x"},
	}}
	resolver := production.NewRecipeResolver(products, &fakeRecipeRepo{})
	checker := production.NewFeasibilityChecker(resolver, newFakeItemRepo())
	logs := newFakeLogRepo()
	uc := production.NewUseCase(
		nil, checker, &fakeTxRunner{productRepo: products, recipeRepo: &fakeRecipeRepo{}},
		products, &fakeRecipeRepo{}, newFakeOrderRepo(logs), logs, &fakeConsumptionRepo{},
		newFakeItemRepo(), &fakeWorkerRepo{workers: map[string]*entity.Worker{}}, logger.Nop(),
	)

	_, result, err := uc.CreateOrder(context.Background(), "prod-x", dec("10"))
	require.ErrorIs(t, err, domain.ErrNoRecipe)
	assert.False(t, result.HasRecipe)
}

// La orden nace Pendiente, pasa a En Proceso con el primer registro parcial y
// a Completado al acumular la meta; crearla no consume stock.
func TestOrder_CicloDeVidaPorRegistros(t *testing.T) {
	fx := newUsecaseFixture("100", "100")
	ctx := context.Background()

	order, _, err := fx.uc.CreateOrder(ctx, "prod-escoba", dec("30"))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPendiente, order.Status)
	assert.True(t, fx.items.quantity(t, "cerdas").Equal(dec("100")), "crear la orden no consume stock")

	_, err = fx.uc.CreateLog(ctx, logInput(order.ID, "10"))
	require.NoError(t, err)
	refreshed, err := fx.orders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderEnProceso, refreshed.Status)
	assert.Nil(t, refreshed.CompletedAt)

	_, err = fx.uc.CreateLog(ctx, logInput(order.ID, "20"))
	require.NoError(t, err)
	refreshed, err = fx.orders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompletado, refreshed.Status)
	assert.NotNil(t, refreshed.CompletedAt)

	assert.True(t, fx.items.quantity(t, "escoba-a").Equal(dec("30")))
	assert.True(t, fx.items.quantity(t, "cerdas").Equal(dec("85")), "100 - 0.5×30")
}

// Eliminar el único registro devuelve la orden a Pendiente y el stock a su
// estado original.
func TestDeleteLog_RevierteStockYOrden(t *testing.T) {
	fx := newUsecaseFixture("100", "100")
	ctx := context.Background()

	order, _, err := fx.uc.CreateOrder(ctx, "prod-escoba", dec("30"))
	require.NoError(t, err)
	result, err := fx.uc.CreateLog(ctx, logInput(order.ID, "10"))
	require.NoError(t, err)
	assert.Empty(t, result.Warning)

	require.NoError(t, fx.uc.DeleteLog(ctx, result.Log.ID))

	assert.True(t, fx.items.quantity(t, "escoba-a").Equal(dec("0")))
	assert.True(t, fx.items.quantity(t, "cerdas").Equal(dec("100")))
	assert.True(t, fx.items.quantity(t, "mango").Equal(dec("100")))

	refreshed, err := fx.orders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPendiente, refreshed.Status)

	gone, err := fx.logs.GetByID(result.Log.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "el registro revertido se elimina")
}

// Si la reversión no puede aplicarse, el registro se conserva: es la única
// trazabilidad para la corrección manual.
func TestDeleteLog_ConservaRegistroSiReversionFalla(t *testing.T) {
	fx := newUsecaseFixture("100", "100")
	ctx := context.Background()

	result, err := fx.uc.CreateLog(ctx, logInput("", "10"))
	require.NoError(t, err)

	// El artículo terminado desaparece antes de la reversión.
	require.NoError(t, fx.items.Delete("escoba-a"))

	err = fx.uc.DeleteLog(ctx, result.Log.ID)
	require.Error(t, err)

	kept, err := fx.logs.GetByID(result.Log.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept, "el registro no se borra con la reversión incompleta")
	assert.True(t, fx.items.quantity(t, "cerdas").Equal(dec("95")), "las materias primas no se devuelven")
}

func TestCreateLog_ValidaExistencia(t *testing.T) {
	fx := newUsecaseFixture("100", "100")
	ctx := context.Background()

	in := logInput("", "10")
	in.WorkerID = "no-existe"
	_, err := fx.uc.CreateLog(ctx, in)
	require.ErrorIs(t, err, domain.ErrNotFound)

	in = logInput("", "10")
	in.InventoryID = "no-existe"
	_, err = fx.uc.CreateLog(ctx, in)
	require.ErrorIs(t, err, domain.ErrNotFound)

	in = logInput("orden-inexistente", "10")
	_, err = fx.uc.CreateLog(ctx, in)
	require.ErrorIs(t, err, domain.ErrNotFound)

	in = logInput("", "0")
	_, err = fx.uc.CreateLog(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
