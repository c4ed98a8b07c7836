package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pukassein/teysa/internal/application/production"
	"github.com/pukassein/teysa/internal/domain/entity"
)

// RecipeLineRequest línea de receta en el alta de producto.
type RecipeLineRequest struct {
	RawMaterialInventoryID string          `json:"raw_material_inventory_id" validate:"required"`
	QuantityRequired       decimal.Decimal `json:"quantity_required"`
}

// CreateProductRequest entrada para crear un producto con su receta.
type CreateProductRequest struct {
	Name                string              `json:"name" validate:"required,min=1,max=200"`
	FinishedInventoryID string              `json:"finished_inventory_id" validate:"required"`
	Recipe              []RecipeLineRequest `json:"recipe"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	FinishedInventoryID string    `json:"finished_inventory_id"`
	CreatedAt           time.Time `json:"created_at"`
}

// ProductFromEntity mapea la entidad a la respuesta.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		FinishedInventoryID: p.FinishedProductInventoryID,
		CreatedAt:           p.CreatedAt,
	}
}

// RecipeLineResponse salida de una línea de receta.
type RecipeLineResponse struct {
	ID                     string          `json:"id"`
	ProductID              string          `json:"product_id"`
	RawMaterialInventoryID string          `json:"raw_material_inventory_id"`
	QuantityRequired       decimal.Decimal `json:"quantity_required"`
}

// RecipeLineFromEntity mapea la entidad a la respuesta.
func RecipeLineFromEntity(r *entity.ProductRecipe) RecipeLineResponse {
	return RecipeLineResponse{
		ID:                     r.ID,
		ProductID:              r.ProductID,
		RawMaterialInventoryID: r.RawMaterialInventoryID,
		QuantityRequired:       r.QuantityRequired,
	}
}

// CreateOrderRequest entrada para crear una orden de producción.
type CreateOrderRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// MaterialCheckResponse detalle de factibilidad por material.
type MaterialCheckResponse struct {
	MaterialID string          `json:"material_id"`
	Required   decimal.Decimal `json:"required"`
	Available  decimal.Decimal `json:"available"`
	Sufficient bool            `json:"sufficient"`
}

// FeasibilityResponse resultado de la verificación de factibilidad.
type FeasibilityResponse struct {
	Feasible    bool                    `json:"feasible"`
	HasRecipe   bool                    `json:"has_recipe"`
	PerMaterial []MaterialCheckResponse `json:"per_material"`
}

// FeasibilityFromResult mapea el resultado del verificador.
func FeasibilityFromResult(r *production.FeasibilityResult) FeasibilityResponse {
	out := FeasibilityResponse{Feasible: r.Feasible, HasRecipe: r.HasRecipe}
	for _, m := range r.PerMaterial {
		out.PerMaterial = append(out.PerMaterial, MaterialCheckResponse{
			MaterialID: m.MaterialID,
			Required:   m.Required,
			Available:  m.Available,
			Sufficient: m.Sufficient,
		})
	}
	return out
}

// OrderResponse salida de una orden de producción.
type OrderResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	QuantityToProduce decimal.Decimal `json:"quantity_to_produce"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
}

// OrderFromEntity mapea la entidad a la respuesta.
func OrderFromEntity(o *entity.ProductionOrder) OrderResponse {
	return OrderResponse{
		ID:                o.ID,
		ProductID:         o.ProductID,
		QuantityToProduce: o.QuantityToProduce,
		Status:            o.Status,
		CreatedAt:         o.CreatedAt,
		CompletedAt:       o.CompletedAt,
	}
}

// CreateLogRequest entrada para registrar producción ejecutada.
// ProductionDate en formato YYYY-MM-DD.
type CreateLogRequest struct {
	WorkerID       string          `json:"worker_id" validate:"required"`
	InventoryID    string          `json:"inventory_id" validate:"required"`
	OrderID        string          `json:"order_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	ProductionDate string          `json:"production_date" validate:"required"`
}

// LogResponse salida de un registro de producción.
type LogResponse struct {
	ID             string          `json:"id"`
	WorkerID       string          `json:"worker_id"`
	InventoryID    string          `json:"inventory_id"`
	OrderID        string          `json:"order_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	ProductionDate string          `json:"production_date"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LogFromEntity mapea la entidad a la respuesta.
func LogFromEntity(l *entity.ProductionLog) LogResponse {
	return LogResponse{
		ID:             l.ID,
		WorkerID:       l.WorkerID,
		InventoryID:    l.InventoryID,
		OrderID:        l.OrderID,
		Quantity:       l.Quantity,
		ProductionDate: l.ProductionDate.Format("2006-01-02"),
		CreatedAt:      l.CreatedAt,
	}
}

// LogWithWarningResponse registro creado más advertencia de consumo parcial.
type LogWithWarningResponse struct {
	Log     LogResponse `json:"log"`
	Warning string      `json:"warning,omitempty"`
}
