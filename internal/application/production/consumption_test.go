package production_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pukassein/teysa/internal/application/ledger"
	"github.com/pukassein/teysa/internal/application/production"
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

func (r *fakeItemRepo) List() ([]*entity.InventoryItem, error) { return nil, nil }
func (r *fakeItemRepo) ListByCategory(string) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) Update(*entity.InventoryItem) error { return nil }

func (r *fakeItemRepo) UpdateQuantityCAS(id string, expected, newQty decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || !it.Quantity.Equal(expected) {
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

func (r *fakeItemRepo) ListLowStock() ([]*entity.InventoryItem, error) { return nil, nil }

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
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *m
	r.movements = append(r.movements, &copied)
	return nil
}

func (r *fakeMovementRepo) GetByID(string) (*entity.InventoryMovement, error) { return nil, nil }
func (r *fakeMovementRepo) ListRecent(int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) ListByItem(string, int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) SetCancelled(string, bool) error { return nil }
func (r *fakeMovementRepo) Delete(string) error             { return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductRepo) GetByFinishedInventoryID(inventoryID string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.FinishedProductInventoryID == inventoryID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeRecipeRepo struct {
	mu    sync.Mutex
	lines []*entity.ProductRecipe
}

func (r *fakeRecipeRepo) Create(line *entity.ProductRecipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *line
	r.lines = append(r.lines, &copied)
	return nil
}

func (r *fakeRecipeRepo) ListByProduct(productID string) ([]*entity.ProductRecipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ProductRecipe
	for _, ln := range r.lines {
		if ln.ProductID == productID {
			copied := *ln
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ln := range r.lines {
		if ln.ID == id {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeConsumptionRepo struct {
	mu   sync.Mutex
	rows []*entity.ProductionConsumption
}

func (r *fakeConsumptionRepo) CreateBatch(rows []*entity.ProductionConsumption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		copied := *row
		r.rows = append(r.rows, &copied)
	}
	return nil
}

func (r *fakeConsumptionRepo) ListByLog(logID string) ([]*entity.ProductionConsumption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ProductionConsumption
	for _, row := range r.rows {
		if row.ProductionLogID == logID {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeConsumptionRepo) DeleteByLog(logID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.ProductionLogID != logID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newItem(id string, category string, qty string) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:       id,
		Name:     id,
		Category: category,
		Quantity: dec(qty),
		Unit:     "unidades",
		Brand:    entity.BrandGenerica,
	}
}

// escobaFixture arma el escenario Escoba Modelo A: 1 escoba = 0.5 kg de
// cerdas + 1 mango.
type escobaFixture struct {
	items    *fakeItemRepo
	consumos *fakeConsumptionRepo
	recipes  *fakeRecipeRepo
	engine   *production.Engine
	checker  *production.FeasibilityChecker
}

func newEscobaFixture(cerdasQty, mangosQty, escobasQty string) *escobaFixture {
	items := newFakeItemRepo(
		newItem("cerdas", entity.CategoryRawMaterial, cerdasQty),
		newItem("mango", entity.CategoryRawMaterial, mangosQty),
		newItem("escoba-a", entity.CategoryFinishedGood, escobasQty),
	)
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-escoba": {ID: "prod-escoba", Name: "Escoba Modelo A", FinishedProductInventoryID: "escoba-a"},
	}}
	recipes := &fakeRecipeRepo{lines: []*entity.ProductRecipe{
		{ID: "r1", ProductID: "prod-escoba", RawMaterialInventoryID: "cerdas", QuantityRequired: dec("0.5")},
		{ID: "r2", ProductID: "prod-escoba", RawMaterialInventoryID: "mango", QuantityRequired: dec("1")},
	}}
	consumos := &fakeConsumptionRepo{}

	stockLedger := ledger.NewStockLedger(items, &fakeMovementRepo{}, logger.Nop())
	resolver := production.NewRecipeResolver(products, recipes)
	return &escobaFixture{
		items:    items,
		consumos: consumos,
		recipes:  recipes,
		engine:   production.NewEngine(stockLedger, resolver, consumos, logger.Nop()),
		checker:  production.NewFeasibilityChecker(resolver, items),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply / Reverse
// ──────────────────────────────────────────────────────────────────────────────

// Producir 20 Escobas A sube el terminado en 20 y baja cerdas 10 kg (0.5×20)
// y mangos 20 unidades, dejando la foto del consumo.
func TestEngineApply_EscobaConsumeReceta(t *testing.T) {
	fx := newEscobaFixture("100", "100", "0")

	report, err := fx.engine.Apply(context.Background(), "log-1", "escoba-a", dec("20"))
	require.NoError(t, err)
	assert.True(t, report.FullyApplied())
	assert.True(t, report.HasRecipe)

	assert.True(t, fx.items.quantity(t, "escoba-a").Equal(dec("20")))
	assert.True(t, fx.items.quantity(t, "cerdas").Equal(dec("90")), "100 - 0.5×20")
	assert.True(t, fx.items.quantity(t, "mango").Equal(dec("80")), "100 - 1×20")

	snapshot, err := fx.consumos.ListByLog("log-1")
	require.NoError(t, err)
	assert.Len(t, snapshot, 2, "una fila de foto por material")
}

// Revertir el registro devuelve el sistema exactamente al estado anterior.
func TestEngineReverse_EspejoExacto(t *testing.T) {
	fx := newEscobaFixture("100", "100", "0")
	ctx := context.Background()

	_, err := fx.engine.Apply(ctx, "log-1", "escoba-a", dec("20"))
	require.NoError(t, err)

	report, err := fx.engine.Reverse(ctx, "log-1", "escoba-a", dec("20"))
	require.NoError(t, err)
	assert.True(t, report.FullyApplied())

	assert.True(t, fx.items.quantity(t, "escoba-a").Equal(dec("0")))
	assert.True(t, fx.items.quantity(t, "cerdas").Equal(dec("100")))
	assert.True(t, fx.items.quantity(t, "mango").Equal(dec("100")))
}

// La reversión usa la foto del consumo aplicado, no la receta vigente: editar
// la receta entre el registro y la reversión no altera lo devuelto.
func TestEngineReverse_UsaFotoAunqueRecetaCambie(t *testing.T) {
	fx := newEscobaFixture("100", "100", "0")
	ctx := context.Background()

	_, err := fx.engine.Apply(ctx, "log-1", "escoba-a", dec("20"))
	require.NoError(t, err)

	// La receta ahora pide el doble de cerdas.
	fx.recipes.lines[0].QuantityRequired = dec("1")

	_, err = fx.engine.Reverse(ctx, "log-1", "escoba-a", dec("20"))
	require.NoError(t, err)
	assert.True(t, fx.items.quantity(t, "cerdas").Equal(dec("100")),
		"se devuelven los 10 kg consumidos, no los 20 de la receta editada")
}

// Sin producto definido para el artículo terminado, la producción es ad-hoc:
// solo se actualiza el terminado y no hay líneas de consumo.
func TestEngineApply_SinProductoEsAdHoc(t *testing.T) {
	items := newFakeItemRepo(newItem("granel", entity.CategoryFinishedGood, "0"))
	stockLedger := ledger.NewStockLedger(items, &fakeMovementRepo{}, logger.Nop())
	resolver := production.NewRecipeResolver(&fakeProductRepo{products: map[string]*entity.Product{}}, &fakeRecipeRepo{})
	engine := production.NewEngine(stockLedger, resolver, &fakeConsumptionRepo{}, logger.Nop())

	report, err := engine.Apply(context.Background(), "log-1", "granel", dec("15"))
	require.NoError(t, err)
	assert.False(t, report.HasRecipe)
	assert.True(t, report.FinishedGoodApplied)
	assert.Empty(t, report.Lines)
	assert.True(t, items.quantity(t, "granel").Equal(dec("15")))
}

// Los materiales pueden quedar negativos al producir: el registro de
// producción ya ocurrió en el mundo físico y el sistema lo refleja aunque el
// stock registrado fuera insuficiente.
func TestEngineApply_MaterialQuedaNegativo(t *testing.T) {
	fx := newEscobaFixture("5", "100", "0")

	report, err := fx.engine.Apply(context.Background(), "log-1", "escoba-a", dec("20"))
	require.NoError(t, err)
	assert.True(t, report.FullyApplied())
	assert.True(t, fx.items.quantity(t, "cerdas").Equal(dec("-5")), "5 - 10 = -5")
}
