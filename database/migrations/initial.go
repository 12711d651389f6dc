package migrations

import (
	"github.com/shashiranjanraj/pubqr/app/repositories"
	"github.com/shashiranjanraj/pubqr/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20260301000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260301000002_create_orders_table", &CreateOrdersTable{})
}

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&repositories.CategoryRow{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&repositories.CategoryRow{})
}

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&repositories.ProductRow{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&repositories.ProductRow{})
}

// CreateOrdersTable creates orders and their lines together.
type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&repositories.OrderRow{}, &repositories.OrderItemRow{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&repositories.OrderItemRow{}, &repositories.OrderRow{})
}
