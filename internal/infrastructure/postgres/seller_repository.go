package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
)

var _ repository.SellerRepository = (*SellerRepo)(nil)
var _ repository.SellerInventoryRepository = (*SellerInventoryRepo)(nil)
var _ repository.SellerMovementRepository = (*SellerMovementRepo)(nil)

// SellerRepo implementación sobre PostgreSQL (usable con pool o tx).
type SellerRepo struct {
	q Querier
}

// NewSellerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSellerRepository(q Querier) *SellerRepo {
	return &SellerRepo{q: q}
}

// Create persiste un vendedor.
func (r *SellerRepo) Create(s *entity.Seller) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO sellers (id, name, created_at) VALUES ($1, $2, $3)`,
		s.ID, s.Name, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create seller: %w", err)
	}
	return nil
}

// GetByID obtiene un vendedor por ID; nil, nil si no existe.
func (r *SellerRepo) GetByID(id string) (*entity.Seller, error) {
	var s entity.Seller
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, created_at FROM sellers WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return &s, nil
}

// List lista los vendedores por nombre.
func (r *SellerRepo) List() ([]*entity.Seller, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, created_at FROM sellers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Seller
	for rows.Next() {
		var s entity.Seller
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Delete elimina un vendedor.
func (r *SellerRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM sellers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete seller: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SellerInventoryRepo implementación sobre PostgreSQL (usable con pool o tx).
type SellerInventoryRepo struct {
	q Querier
}

// NewSellerInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSellerInventoryRepository(q Querier) *SellerInventoryRepo {
	return &SellerInventoryRepo{q: q}
}

// Create persiste una fila del sub-libro.
func (r *SellerInventoryRepo) Create(si *entity.SellerInventory) error {
	query := `
		INSERT INTO seller_inventory (id, seller_id, inventory_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		si.ID, si.SellerID, si.InventoryID, si.Quantity, si.LastUpdated)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create seller inventory: %w", err)
	}
	return nil
}

// GetBySellerAndItem obtiene la fila (vendedor, artículo); nil, nil si no hay.
func (r *SellerInventoryRepo) GetBySellerAndItem(sellerID, inventoryID string) (*entity.SellerInventory, error) {
	query := `
		SELECT id, seller_id, inventory_id, quantity, last_updated
		FROM seller_inventory WHERE seller_id = $1 AND inventory_id = $2`
	var si entity.SellerInventory
	err := r.q.QueryRow(context.Background(), query, sellerID, inventoryID).Scan(
		&si.ID, &si.SellerID, &si.InventoryID, &si.Quantity, &si.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller inventory: %w", err)
	}
	return &si, nil
}

// ListBySeller lista el stock en poder de un vendedor.
func (r *SellerInventoryRepo) ListBySeller(sellerID string) ([]*entity.SellerInventory, error) {
	query := `
		SELECT id, seller_id, inventory_id, quantity, last_updated
		FROM seller_inventory WHERE seller_id = $1`
	rows, err := r.q.Query(context.Background(), query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller inventory: %w", err)
	}
	defer rows.Close()

	var out []*entity.SellerInventory
	for rows.Next() {
		var si entity.SellerInventory
		if err := rows.Scan(&si.ID, &si.SellerID, &si.InventoryID, &si.Quantity, &si.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan seller inventory: %w", err)
		}
		out = append(out, &si)
	}
	return out, rows.Err()
}

// UpdateQuantityCAS actualiza la cantidad solo si el valor vigente es expected.
func (r *SellerInventoryRepo) UpdateQuantityCAS(id string, expected, newQty decimal.Decimal) error {
	query := `
		UPDATE seller_inventory
		SET quantity = $3, last_updated = now()
		WHERE id = $1 AND quantity = $2`
	tag, err := r.q.Exec(context.Background(), query, id, expected, newQty)
	if err != nil {
		return fmt.Errorf("update seller inventory quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// Delete elimina una fila del sub-libro.
func (r *SellerInventoryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM seller_inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete seller inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SellerMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type SellerMovementRepo struct {
	q Querier
}

// NewSellerMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSellerMovementRepository(q Querier) *SellerMovementRepo {
	return &SellerMovementRepo{q: q}
}

// Create persiste un movimiento de vendedor.
func (r *SellerMovementRepo) Create(m *entity.SellerMovement) error {
	query := `
		INSERT INTO seller_movements (id, seller_id, inventory_id, movement_type, quantity, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.SellerID, m.InventoryID, m.Type, m.Quantity, m.Notes, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create seller movement: %w", err)
	}
	return nil
}

// ListBySeller lista los movimientos recientes de un vendedor.
func (r *SellerMovementRepo) ListBySeller(sellerID string, limit int) ([]*entity.SellerMovement, error) {
	query := `
		SELECT id, seller_id, inventory_id, movement_type, quantity, notes, created_at
		FROM seller_movements WHERE seller_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, sellerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list seller movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.SellerMovement
	for rows.Next() {
		var m entity.SellerMovement
		if err := rows.Scan(&m.ID, &m.SellerID, &m.InventoryID, &m.Type, &m.Quantity, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan seller movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
