package entity

import "time"

// Roles de usuario. Las decisiones de autorización se toman solo en el
// middleware de rutas; el núcleo de inventario no recibe roles.
const (
	RoleAdmin       = "admin"
	RoleShopManager = "shop_manager"
	RoleStaff       = "staff"
)

// User usuario del sistema. ShopID asigna managers/staff a una tienda.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	ShopID       string // vacío para admins
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
