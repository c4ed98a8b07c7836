package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)
var _ repository.ProductionLogRepository = (*ProductionLogRepo)(nil)
var _ repository.ProductionConsumptionRepository = (*ProductionConsumptionRepo)(nil)

// ProductionOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

// Create persiste una orden de producción.
func (r *ProductionOrderRepo) Create(o *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, product_id, quantity_to_produce, status, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.ProductID, o.QuantityToProduce, o.Status, o.CreatedAt, o.CompletedAt)
	if err != nil {
		return fmt.Errorf("create production order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID; nil, nil si no existe.
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `
		SELECT id, product_id, quantity_to_produce, status, created_at, completed_at
		FROM production_orders WHERE id = $1`
	var o entity.ProductionOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.ProductID, &o.QuantityToProduce, &o.Status, &o.CreatedAt, &o.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return &o, nil
}

// List lista órdenes de la más reciente a la más antigua.
func (r *ProductionOrderRepo) List() ([]*entity.ProductionOrder, error) {
	query := `
		SELECT id, product_id, quantity_to_produce, status, created_at, completed_at
		FROM production_orders ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(&o.ID, &o.ProductID, &o.QuantityToProduce, &o.Status, &o.CreatedAt, &o.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// UpdateStatus actualiza el estado y la marca de completado.
func (r *ProductionOrderRepo) UpdateStatus(id, status string, completedAt *time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE production_orders SET status = $2, completed_at = $3 WHERE id = $1`,
		id, status, completedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumLoggedQuantity suma la cantidad de los registros que referencian la orden.
func (r *ProductionOrderRepo) SumLoggedQuantity(orderID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM production_logs WHERE order_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, orderID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum logged quantity: %w", err)
	}
	return sum, nil
}

// Delete elimina una orden.
func (r *ProductionOrderRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM production_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete production order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ProductionLogRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductionLogRepo struct {
	q Querier
}

// NewProductionLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionLogRepository(q Querier) *ProductionLogRepo {
	return &ProductionLogRepo{q: q}
}

// Create persiste un registro de producción. OrderID vacío se guarda NULL.
func (r *ProductionLogRepo) Create(l *entity.ProductionLog) error {
	query := `
		INSERT INTO production_logs (id, worker_id, inventory_id, order_id, quantity, production_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	orderID := (*string)(nil)
	if l.OrderID != "" {
		orderID = &l.OrderID
	}
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.WorkerID, l.InventoryID, orderID, l.Quantity, l.ProductionDate, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("create production log: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID; nil, nil si no existe.
func (r *ProductionLogRepo) GetByID(id string) (*entity.ProductionLog, error) {
	query := `
		SELECT id, worker_id, inventory_id, order_id, quantity, production_date, created_at
		FROM production_logs WHERE id = $1`
	var l entity.ProductionLog
	var orderID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.WorkerID, &l.InventoryID, &orderID, &l.Quantity, &l.ProductionDate, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production log: %w", err)
	}
	if orderID != nil {
		l.OrderID = *orderID
	}
	return &l, nil
}

// ListRecent lista registros por fecha de producción y creación descendentes.
func (r *ProductionLogRepo) ListRecent(limit int) ([]*entity.ProductionLog, error) {
	query := `
		SELECT id, worker_id, inventory_id, order_id, quantity, production_date, created_at
		FROM production_logs ORDER BY production_date DESC, created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list production logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductionLog
	for rows.Next() {
		var l entity.ProductionLog
		var orderID *string
		if err := rows.Scan(&l.ID, &l.WorkerID, &l.InventoryID, &orderID, &l.Quantity, &l.ProductionDate, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production log: %w", err)
		}
		if orderID != nil {
			l.OrderID = *orderID
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// Delete elimina un registro de producción.
func (r *ProductionLogRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM production_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete production log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ProductionConsumptionRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductionConsumptionRepo struct {
	q Querier
}

// NewProductionConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionConsumptionRepository(q Querier) *ProductionConsumptionRepo {
	return &ProductionConsumptionRepo{q: q}
}

// CreateBatch persiste la foto de consumo de un registro en un solo insert.
func (r *ProductionConsumptionRepo) CreateBatch(rows []*entity.ProductionConsumption) error {
	if len(rows) == 0 {
		return nil
	}
	query := `INSERT INTO production_consumptions (id, production_log_id, raw_material_inventory_id, quantity_consumed) VALUES `
	args := make([]any, 0, len(rows)*4)
	for i, c := range rows {
		if i > 0 {
			query += ", "
		}
		base := i * 4
		query += fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4)
		args = append(args, c.ID, c.ProductionLogID, c.RawMaterialInventoryID, c.QuantityConsumed)
	}
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("create consumption snapshot: %w", err)
	}
	return nil
}

// ListByLog lista la foto de consumo de un registro; vacía si no hay.
func (r *ProductionConsumptionRepo) ListByLog(logID string) ([]*entity.ProductionConsumption, error) {
	query := `
		SELECT id, production_log_id, raw_material_inventory_id, quantity_consumed
		FROM production_consumptions WHERE production_log_id = $1`
	rows, err := r.q.Query(context.Background(), query, logID)
	if err != nil {
		return nil, fmt.Errorf("list consumption snapshot: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductionConsumption
	for rows.Next() {
		var c entity.ProductionConsumption
		if err := rows.Scan(&c.ID, &c.ProductionLogID, &c.RawMaterialInventoryID, &c.QuantityConsumed); err != nil {
			return nil, fmt.Errorf("scan consumption row: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// DeleteByLog borra la foto de consumo de un registro.
func (r *ProductionConsumptionRepo) DeleteByLog(logID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM production_consumptions WHERE production_log_id = $1`, logID)
	if err != nil {
		return fmt.Errorf("delete consumption snapshot: %w", err)
	}
	return nil
}
