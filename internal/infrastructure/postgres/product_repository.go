package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.ProductRecipeRepository = (*ProductRecipeRepo)(nil)

// ProductRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, finished_product_inventory_id, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.Name, p.FinishedProductInventoryID, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil, nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT id, name, finished_product_inventory_id, created_at FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.FinishedProductInventoryID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByFinishedInventoryID busca el producto por su artículo terminado;
// nil, nil si no hay producto definido para ese artículo.
func (r *ProductRepo) GetByFinishedInventoryID(inventoryID string) (*entity.Product, error) {
	query := `SELECT id, name, finished_product_inventory_id, created_at FROM products WHERE finished_product_inventory_id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, inventoryID).Scan(
		&p.ID, &p.Name, &p.FinishedProductInventoryID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by inventory: %w", err)
	}
	return &p, nil
}

// List lista los productos ordenados por nombre.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT id, name, finished_product_inventory_id, created_at FROM products ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.FinishedProductInventoryID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Delete elimina un producto (la receta cae en cascada).
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ProductRecipeRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductRecipeRepo struct {
	q Querier
}

// NewProductRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRecipeRepository(q Querier) *ProductRecipeRepo {
	return &ProductRecipeRepo{q: q}
}

// Create persiste una línea de receta.
func (r *ProductRecipeRepo) Create(line *entity.ProductRecipe) error {
	query := `
		INSERT INTO product_recipes (id, product_id, raw_material_inventory_id, quantity_required)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.ProductID, line.RawMaterialInventoryID, line.QuantityRequired)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create recipe line: %w", err)
	}
	return nil
}

// ListByProduct lista la receta de un producto; vacía si no tiene.
func (r *ProductRecipeRepo) ListByProduct(productID string) ([]*entity.ProductRecipe, error) {
	query := `
		SELECT id, product_id, raw_material_inventory_id, quantity_required
		FROM product_recipes WHERE product_id = $1`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductRecipe
	for rows.Next() {
		var line entity.ProductRecipe
		if err := rows.Scan(&line.ID, &line.ProductID, &line.RawMaterialInventoryID, &line.QuantityRequired); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		out = append(out, &line)
	}
	return out, rows.Err()
}

// Delete elimina una línea de receta.
func (r *ProductRecipeRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM product_recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
