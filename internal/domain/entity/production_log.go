package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionLog es un evento de producción ejecutado. Registrarlo dispara el
// motor de consumo (sube el producto terminado, baja cada materia prima de la
// receta); eliminarlo dispara la reversión exacta.
type ProductionLog struct {
	ID             string
	WorkerID       string
	InventoryID    string // artículo de producto terminado producido
	OrderID        string // opcional: orden de producción asociada
	Quantity       decimal.Decimal
	ProductionDate time.Time // solo fecha (YYYY-MM-DD)
	CreatedAt      time.Time
}

// ProductionConsumption es la foto del consumo real de un registro de
// producción: qué materia prima se descontó y cuánto. La reversión usa esta
// foto y no la receta vigente, de modo que editar la receta entre el registro
// y su eliminación no altera la reversión.
type ProductionConsumption struct {
	ID                     string
	ProductionLogID        string
	RawMaterialInventoryID string
	QuantityConsumed       decimal.Decimal
}
