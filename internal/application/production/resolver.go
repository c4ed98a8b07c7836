// Package production implementa la producción: resolución de recetas,
// verificación de factibilidad, y el motor de consumo que mantiene el libro
// de stock consistente al registrar o revertir producción.
package production

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/repository"
)

// RecipeLine una línea resuelta de la lista de materiales.
type RecipeLine struct {
	RawMaterialInventoryID string
	QuantityPerUnit        decimal.Decimal
}

// RecipeResolver resuelve la lista de materiales de un producto.
type RecipeResolver struct {
	productRepo repository.ProductRepository
	recipeRepo  repository.ProductRecipeRepository
}

// NewRecipeResolver construye el resolver.
func NewRecipeResolver(productRepo repository.ProductRepository, recipeRepo repository.ProductRecipeRepository) *RecipeResolver {
	return &RecipeResolver{productRepo: productRepo, recipeRepo: recipeRepo}
}

// Resolve devuelve las líneas de receta del producto. Lista vacía (no error)
// cuando el producto existe pero no tiene receta; ErrNotFound solo cuando el
// producto no existe. Los callers tratan ambos casos de forma distinta:
// producción ad-hoc permitida vs. rechazo duro.
func (r *RecipeResolver) Resolve(ctx context.Context, productID string) ([]RecipeLine, error) {
	product, err := r.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := r.recipeRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	lines := make([]RecipeLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, RecipeLine{
			RawMaterialInventoryID: row.RawMaterialInventoryID,
			QuantityPerUnit:        row.QuantityRequired,
		})
	}
	return lines, nil
}

// ResolveByInventory busca el producto cuyo artículo terminado es
// inventoryID y resuelve su receta. productID vacío significa que no hay
// producto definido para ese artículo (producción ad-hoc).
func (r *RecipeResolver) ResolveByInventory(ctx context.Context, inventoryID string) (productID string, lines []RecipeLine, err error) {
	product, err := r.productRepo.GetByFinishedInventoryID(inventoryID)
	if err != nil {
		return "", nil, err
	}
	if product == nil {
		return "", nil, nil
	}
	lines, err = r.Resolve(ctx, product.ID)
	if err != nil {
		return "", nil, err
	}
	return product.ID, lines, nil
}
