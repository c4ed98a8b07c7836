package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de artículo de inventario.
const (
	CategoryRawMaterial  = "Materia Prima"
	CategoryFinishedGood = "Producto Terminado"
)

// Marcas manejadas por el taller (enumeración cerrada).
const (
	BrandDuramaxi = "Duramaxi"
	BrandAvanty   = "Avanty"
	BrandDiletta  = "Diletta"
	BrandGenerica = "Generica"
)

// Brands lista las marcas válidas, en el orden en que se muestran.
var Brands = []string{BrandDuramaxi, BrandAvanty, BrandDiletta, BrandGenerica}

// StandardUnits unidades de medida estándar; cualquier otro valor se trata
// como unidad libre ("Otro").
var StandardUnits = []string{"docenas", "unidades", "kg", "metros"}

// InventoryItem representa un artículo de stock (materia prima o producto
// terminado). Quantity es el stock vigente y solo se muta a través de
// operaciones que registran un InventoryMovement, incluidas las ediciones
// directas (movimiento sintético de ajuste).
type InventoryItem struct {
	ID                string
	Name              string
	Category          string // Materia Prima | Producto Terminado
	Quantity          decimal.Decimal
	LowStockThreshold decimal.Decimal
	Unit              string
	Brand             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el stock está por debajo del umbral configurado.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThan(i.LowStockThreshold)
}

// ValidBrand verifica que la marca pertenezca a la enumeración cerrada.
func ValidBrand(brand string) bool {
	for _, b := range Brands {
		if b == brand {
			return true
		}
	}
	return false
}

// ValidCategory verifica la categoría del artículo.
func ValidCategory(cat string) bool {
	return cat == CategoryRawMaterial || cat == CategoryFinishedGood
}
