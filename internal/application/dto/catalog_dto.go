package dto

import (
	"github.com/shopspring/decimal"
)

// ShopRequest body para crear/actualizar tiendas.
type ShopRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// ProductRequest body para crear/actualizar productos.
type ProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}

// RawMaterialRequest body para crear/actualizar materias primas.
type RawMaterialRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// FabricRuleRequest body para crear reglas de consumo.
type FabricRuleRequest struct {
	ProductID          string          `json:"product_id"`
	RawMaterialID      string          `json:"raw_material_id"`
	ConsumptionPerUnit decimal.Decimal `json:"consumption_per_unit"`
}

// ShopResponse tienda en respuestas.
type ShopResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	IsActive bool   `json:"is_active"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	IsActive    bool            `json:"is_active"`
}

// RawMaterialResponse materia prima en respuestas.
type RawMaterialResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	IsActive    bool            `json:"is_active"`
}

// FabricRuleResponse regla de consumo en respuestas.
type FabricRuleResponse struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"product_id"`
	RawMaterialID      string          `json:"raw_material_id"`
	ConsumptionPerUnit decimal.Decimal `json:"consumption_per_unit"`
}

// UserResponse usuario sin el hash de password.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	ShopID   string `json:"shop_id,omitempty"`
	IsActive bool   `json:"is_active"`
}

// RegisterRequest body para registro de usuarios.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ShopID   string `json:"shop_id,omitempty"`
}

// LoginRequest body para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse token JWT emitido.
type TokenResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
