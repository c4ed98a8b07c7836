package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de producción.
const (
	OrderPendiente  = "Pendiente"
	OrderEnProceso  = "En Proceso"
	OrderCompletado = "Completado"
)

// ProductionOrder es una corrida de producción planeada. Crear la orden no
// consume stock: el consumo ocurre al registrar ProductionLog. La orden pasa
// a En Proceso con el primer registro que la referencia y a Completado cuando
// la cantidad registrada acumulada alcanza QuantityToProduce.
type ProductionOrder struct {
	ID                string
	ProductID         string
	QuantityToProduce decimal.Decimal
	Status            string
	CreatedAt         time.Time
	CompletedAt       *time.Time
}
