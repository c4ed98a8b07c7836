package entity

import "time"

// Supplier es un proveedor de materia prima o insumos.
type Supplier struct {
	ID             string
	CompanyName    string
	Location       string
	PhoneNumber    string
	ContactPerson  string
	SuppliesDetail string
	CreatedAt      time.Time
}
