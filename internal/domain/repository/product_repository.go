package repository

import "github.com/pukassein/teysa/internal/domain/entity"

// ProductRepository acceso a productos con receta.
type ProductRepository interface {
	Create(p *entity.Product) error
	// GetByID retorna nil, nil si el producto no existe.
	GetByID(id string) (*entity.Product, error)
	// GetByFinishedInventoryID busca el producto cuyo artículo terminado es
	// inventoryID. Retorna nil, nil si no hay producto definido (producción
	// ad-hoc permitida).
	GetByFinishedInventoryID(inventoryID string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Delete(id string) error
}

// ProductRecipeRepository acceso a las líneas de receta (lista de materiales).
type ProductRecipeRepository interface {
	Create(r *entity.ProductRecipe) error
	// ListByProduct retorna lista vacía (no error) si el producto no tiene
	// receta; los callers distinguen "sin receta" de "producto inexistente".
	ListByProduct(productID string) ([]*entity.ProductRecipe, error)
	Delete(id string) error
}
