package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación del sub-libro de vendedor (camión de reventa).
const (
	SellerCarga      = "Carga"      // traslado central → vendedor
	SellerVenta      = "Venta"      // salida definitiva del sistema
	SellerDevolucion = "Devolución" // traslado vendedor → central
)

// Seller es un vendedor ambulante con inventario propio.
type Seller struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// SellerInventory es el stock de un artículo en poder de un vendedor,
// clave (seller, inventory). Espeja la semántica del libro central: la suma
// central + vendedores se conserva en Carga/Devolución y decrece en Venta.
type SellerInventory struct {
	ID          string
	SellerID    string
	InventoryID string
	Quantity    decimal.Decimal
	LastUpdated time.Time
}

// SellerMovement audita cada operación sobre el inventario de un vendedor.
type SellerMovement struct {
	ID          string
	SellerID    string
	InventoryID string
	Type        string // Carga | Venta | Devolución
	Quantity    decimal.Decimal
	Notes       string
	CreatedAt   time.Time
}
