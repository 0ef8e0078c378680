package entity

import "time"

// Shop representa una tienda o la bodega central donde se almacena inventario.
type Shop struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
