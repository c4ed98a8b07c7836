package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es un producto terminado con receta definida. Se vincula uno a uno
// con el artículo de inventario de tipo Producto Terminado que produce.
type Product struct {
	ID                         string
	Name                       string
	FinishedProductInventoryID string
	CreatedAt                  time.Time
}

// ProductRecipe es una línea de la lista de materiales: cuánta materia prima
// se consume por cada unidad de producto. QuantityRequired debe ser > 0.
type ProductRecipe struct {
	ID                     string
	ProductID              string
	RawMaterialInventoryID string
	QuantityRequired       decimal.Decimal
}
