package seller_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pukassein/teysa/internal/application/ledger"
	"github.com/pukassein/teysa/internal/application/seller"
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

func (r *fakeItemRepo) List() ([]*entity.InventoryItem, error)                 { return nil, nil }
func (r *fakeItemRepo) ListByCategory(string) ([]*entity.InventoryItem, error) { return nil, nil }
func (r *fakeItemRepo) Update(*entity.InventoryItem) error                     { return nil }

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

func (r *fakeMovementRepo) GetByID(string) (*entity.InventoryMovement, error)   { return nil, nil }
func (r *fakeMovementRepo) ListRecent(int) ([]*entity.InventoryMovement, error) { return nil, nil }
func (r *fakeMovementRepo) ListByItem(string, int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) SetCancelled(string, bool) error { return nil }
func (r *fakeMovementRepo) Delete(string) error             { return nil }

type fakeSellerRepo struct {
	sellers map[string]*entity.Seller
}

func (r *fakeSellerRepo) Create(s *entity.Seller) error {
	r.sellers[s.ID] = s
	return nil
}

func (r *fakeSellerRepo) GetByID(id string) (*entity.Seller, error) {
	s, ok := r.sellers[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *fakeSellerRepo) List() ([]*entity.Seller, error) { return nil, nil }
func (r *fakeSellerRepo) Delete(id string) error {
	delete(r.sellers, id)
	return nil
}

type fakeSellerInventoryRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.SellerInventory
	// failWrites fuerza el fallo de Create y UpdateQuantityCAS.
	failWrites bool
}

func newFakeSellerInventoryRepo() *fakeSellerInventoryRepo {
	return &fakeSellerInventoryRepo{rows: make(map[string]*entity.SellerInventory)}
}

func (r *fakeSellerInventoryRepo) Create(si *entity.SellerInventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errors.New("sub-libro no disponible")
	}
	copied := *si
	r.rows[si.ID] = &copied
	return nil
}

func (r *fakeSellerInventoryRepo) GetBySellerAndItem(sellerID, inventoryID string) (*entity.SellerInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.SellerID == sellerID && row.InventoryID == inventoryID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSellerInventoryRepo) ListBySeller(sellerID string) ([]*entity.SellerInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.SellerInventory
	for _, row := range r.rows {
		if row.SellerID == sellerID {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSellerInventoryRepo) UpdateQuantityCAS(id string, expected, newQty decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errors.New("sub-libro no disponible")
	}
	row, ok := r.rows[id]
	if !ok || !row.Quantity.Equal(expected) {
		return domain.ErrConflict
	}
	row.Quantity = newQty
	return nil
}

func (r *fakeSellerInventoryRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *fakeSellerInventoryRepo) quantity(t *testing.T, sellerID, inventoryID string) decimal.Decimal {
	t.Helper()
	row, err := r.GetBySellerAndItem(sellerID, inventoryID)
	require.NoError(t, err)
	if row == nil {
		return decimal.Zero
	}
	return row.Quantity
}

type fakeSellerMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.SellerMovement
}

func (r *fakeSellerMovementRepo) Create(m *entity.SellerMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *m
	r.movements = append(r.movements, &copied)
	return nil
}

func (r *fakeSellerMovementRepo) ListBySeller(sellerID string, limit int) ([]*entity.SellerMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.SellerMovement
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.movements[i].SellerID == sellerID {
			copied := *r.movements[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type sellerFixture struct {
	uc        *seller.UseCase
	items     *fakeItemRepo
	sellerInv *fakeSellerInventoryRepo
	movs      *fakeSellerMovementRepo
}

func newSellerFixture(centralQty string) *sellerFixture {
	items := newFakeItemRepo(&entity.InventoryItem{
		ID:       "escoba-a",
		Name:     "Escoba Modelo A",
		Category: entity.CategoryFinishedGood,
		Quantity: dec(centralQty),
		Unit:     "unidades",
		Brand:    entity.BrandDuramaxi,
	})
	sellers := &fakeSellerRepo{sellers: map[string]*entity.Seller{
		"v1": {ID: "v1", Name: "Don Ramón"},
	}}
	sellerInv := newFakeSellerInventoryRepo()
	movs := &fakeSellerMovementRepo{}
	stockLedger := ledger.NewStockLedger(items, &fakeMovementRepo{}, logger.Nop())
	return &sellerFixture{
		uc:        seller.NewUseCase(stockLedger, sellers, sellerInv, movs, logger.Nop()),
		items:     items,
		sellerInv: sellerInv,
		movs:      movs,
	}
}

// total suma central + camión del vendedor para el artículo.
func (fx *sellerFixture) total(t *testing.T) decimal.Decimal {
	t.Helper()
	return fx.items.quantity(t, "escoba-a").Add(fx.sellerInv.quantity(t, "v1", "escoba-a"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Conservación del stock entre central y vendedor
// ──────────────────────────────────────────────────────────────────────────────

// Carga 12 → Venta 5 → Devolución 3: el camión queda en 4, el central
// en 100−12+3 = 91, y la suma central+vendedor solo decrece por la venta.
func TestSeller_CargaVentaDevolucion(t *testing.T) {
	fx := newSellerFixture("100")
	ctx := context.Background()

	require.NoError(t, fx.uc.Carga(ctx, "v1", "escoba-a", dec("12")))
	assert.True(t, fx.items.quantity(t, "escoba-a").Equal(dec("88")))
	assert.True(t, fx.sellerInv.quantity(t, "v1", "escoba-a").Equal(dec("12")))
	assert.True(t, fx.total(t).Equal(dec("100")), "la carga conserva la suma")

	require.NoError(t, fx.uc.Venta(ctx, "v1", "escoba-a", dec("5"), "cliente de la feria"))
	assert.True(t, fx.items.quantity(t, "escoba-a").Equal(dec("88")), "la venta no toca el central")
	assert.True(t, fx.sellerInv.quantity(t, "v1", "escoba-a").Equal(dec("7")))
	assert.True(t, fx.total(t).Equal(dec("95")), "la venta saca stock del sistema")

	require.NoError(t, fx.uc.Devolucion(ctx, "v1", "escoba-a", dec("3")))
	assert.True(t, fx.items.quantity(t, "escoba-a").Equal(dec("91")))
	assert.True(t, fx.sellerInv.quantity(t, "v1", "escoba-a").Equal(dec("4")))
	assert.True(t, fx.total(t).Equal(dec("95")), "la devolución conserva la suma")

	history, err := fx.movs.ListBySeller("v1", 100)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, entity.SellerDevolucion, history[0].Type)
	assert.Equal(t, entity.SellerVenta, history[1].Type)
	assert.Equal(t, "cliente de la feria", history[1].Notes)
	assert.Equal(t, entity.SellerCarga, history[2].Type)
}

func TestSeller_CargaMayorQueCentralRechazada(t *testing.T) {
	fx := newSellerFixture("10")

	err := fx.uc.Carga(context.Background(), "v1", "escoba-a", dec("11"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, fx.items.quantity(t, "escoba-a").Equal(dec("10")), "el central no se toca")
	assert.True(t, fx.sellerInv.quantity(t, "v1", "escoba-a").IsZero())
}

func TestSeller_VentaMayorQueCamionRechazada(t *testing.T) {
	fx := newSellerFixture("100")
	ctx := context.Background()
	require.NoError(t, fx.uc.Carga(ctx, "v1", "escoba-a", dec("5")))

	err := fx.uc.Venta(ctx, "v1", "escoba-a", dec("6"), "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, fx.sellerInv.quantity(t, "v1", "escoba-a").Equal(dec("5")))
}

func TestSeller_DevolucionMayorQueCamionRechazada(t *testing.T) {
	fx := newSellerFixture("100")
	ctx := context.Background()
	require.NoError(t, fx.uc.Carga(ctx, "v1", "escoba-a", dec("5")))

	err := fx.uc.Devolucion(ctx, "v1", "escoba-a", dec("6"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, fx.total(t).Equal(dec("100")))
}

// Si el alta en el sub-libro falla tras descontar el central, la carga se
// compensa devolviendo el stock al central.
func TestSeller_CargaCompensaCentralSiSubLibroFalla(t *testing.T) {
	fx := newSellerFixture("100")
	fx.sellerInv.failWrites = true

	err := fx.uc.Carga(context.Background(), "v1", "escoba-a", dec("12"))
	require.Error(t, err)
	assert.False(t, domain.IsPartialConsistency(err), "la compensación exitosa no es inconsistencia")
	assert.True(t, fx.items.quantity(t, "escoba-a").Equal(dec("100")), "el central recuperó las 12 unidades")
}

func TestSeller_DeleteConStockRechazado(t *testing.T) {
	fx := newSellerFixture("100")
	ctx := context.Background()
	require.NoError(t, fx.uc.Carga(ctx, "v1", "escoba-a", dec("3")))

	err := fx.uc.DeleteSeller(ctx, "v1")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Vaciado el camión, el borrado procede.
	require.NoError(t, fx.uc.Devolucion(ctx, "v1", "escoba-a", dec("3")))
	require.NoError(t, fx.uc.DeleteSeller(ctx, "v1"))
}

func TestSeller_OperacionSobreVendedorInexistente(t *testing.T) {
	fx := newSellerFixture("100")

	err := fx.uc.Carga(context.Background(), "no-existe", "escoba-a", dec("1"))
	require.ErrorIs(t, err, domain.ErrNotFound)
}
