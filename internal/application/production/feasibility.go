package production

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/repository"
)

// MaterialRequirement evaluación de un material para una cantidad deseada.
type MaterialRequirement struct {
	MaterialID string
	Required   decimal.Decimal
	Available  decimal.Decimal
	Sufficient bool
}

// FeasibilityResult resultado de la verificación previa a crear una orden.
// Feasible es true solo si hay receta Y todos los materiales alcanzan.
type FeasibilityResult struct {
	Feasible    bool
	HasRecipe   bool
	PerMaterial []MaterialRequirement
}

// FeasibilityChecker verifica stock disponible contra stock requerido.
// La verificación es consultiva: lee el stock del momento y no lo reserva,
// así que dos órdenes concurrentes pueden sobrevender materiales. Limitación
// aceptada: no hay primitiva de bloqueo entre verificación y creación.
type FeasibilityChecker struct {
	resolver *RecipeResolver
	itemRepo repository.InventoryItemRepository
}

// NewFeasibilityChecker construye el verificador.
func NewFeasibilityChecker(resolver *RecipeResolver, itemRepo repository.InventoryItemRepository) *FeasibilityChecker {
	return &FeasibilityChecker{resolver: resolver, itemRepo: itemRepo}
}

// Check evalúa si hay stock para producir desired unidades del producto.
// Un producto sin receta siempre retorna HasRecipe=false y Feasible=false,
// sin importar la cantidad pedida.
func (c *FeasibilityChecker) Check(ctx context.Context, productID string, desired decimal.Decimal) (*FeasibilityResult, error) {
	if !desired.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	lines, err := c.resolver.Resolve(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return &FeasibilityResult{Feasible: false, HasRecipe: false}, nil
	}

	result := &FeasibilityResult{
		HasRecipe:   true,
		Feasible:    true,
		PerMaterial: make([]MaterialRequirement, 0, len(lines)),
	}
	for _, line := range lines {
		required := line.QuantityPerUnit.Mul(desired)
		available := decimal.Zero
		item, err := c.itemRepo.GetByID(line.RawMaterialInventoryID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			available = item.Quantity
		}
		sufficient := available.GreaterThanOrEqual(required)
		if !sufficient {
			result.Feasible = false
		}
		result.PerMaterial = append(result.PerMaterial, MaterialRequirement{
			MaterialID: line.RawMaterialInventoryID,
			Required:   required,
			Available:  available,
			Sufficient: sufficient,
		})
	}
	return result, nil
}
