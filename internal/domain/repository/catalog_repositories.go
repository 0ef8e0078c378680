package repository

import "github.com/jhoicas/confeccion-api/internal/domain/entity"

// ShopRepository puerto de persistencia para tiendas.
type ShopRepository interface {
	Create(shop *entity.Shop) error
	GetByID(id string) (*entity.Shop, error)
	List(limit, offset int) ([]*entity.Shop, error)
	Update(shop *entity.Shop) error
}

// ProductRepository puerto de persistencia para productos terminados.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}

// RawMaterialRepository puerto de persistencia para materias primas.
type RawMaterialRepository interface {
	Create(material *entity.RawMaterial) error
	GetByID(id string) (*entity.RawMaterial, error)
	GetBySKU(sku string) (*entity.RawMaterial, error)
	List(limit, offset int) ([]*entity.RawMaterial, error)
	Update(material *entity.RawMaterial) error
}

// FabricRuleRepository puerto de persistencia para reglas de consumo de tela.
type FabricRuleRepository interface {
	Create(rule *entity.FabricRule) error
	ListByProduct(productID string) ([]*entity.FabricRule, error)
	List(limit, offset int) ([]*entity.FabricRule, error)
	Delete(id string) error
}

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}
