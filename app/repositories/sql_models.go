package repositories

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pubqr/app/models"
)

// Row types for the sql driver. Primary keys are ObjectID hex strings so
// ids look the same whichever driver is active.

type CategoryRow struct {
	ID   string `gorm:"primaryKey;size:24"`
	Name string `gorm:"size:120;not null"`
}

func (CategoryRow) TableName() string { return "categories" }

type ProductRow struct {
	ID         string    `gorm:"primaryKey;size:24"`
	Name       string    `gorm:"size:120;not null"`
	Price      int64     `gorm:"not null"`
	CategoryID string    `gorm:"size:24;index"`
	Img        string    `gorm:"size:1024"`
	CreatedAt  time.Time `gorm:"index"`
}

func (ProductRow) TableName() string { return "products" }

type OrderRow struct {
	ID        string         `gorm:"primaryKey;size:24"`
	TableCode string         `gorm:"size:32;not null;index"`
	Total     int64          `gorm:"not null"`
	Status    string         `gorm:"size:16;not null;index"`
	CreatedAt time.Time      `gorm:"index"`
	Items     []OrderItemRow `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderRow) TableName() string { return "orders" }

type OrderItemRow struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	OrderID   string `gorm:"size:24;not null;index"`
	Position  int    `gorm:"not null"`
	ProductID string `gorm:"size:64;not null"`
	Name      string `gorm:"size:120;not null"`
	Price     int64  `gorm:"not null"`
	Qty       int64  `gorm:"not null"`
}

func (OrderItemRow) TableName() string { return "order_items" }

// AutoMigrate creates every sql table. Migrations and tests use it.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&CategoryRow{}, &ProductRow{}, &OrderRow{}, &OrderItemRow{})
}

func hexID(id string) primitive.ObjectID {
	oid, _ := primitive.ObjectIDFromHex(id)
	return oid
}

func categoryFromRow(r CategoryRow) models.Category {
	return models.Category{ID: hexID(r.ID), Name: r.Name}
}

func productFromRow(r ProductRow) models.Product {
	return models.Product{
		ID:         hexID(r.ID),
		Name:       r.Name,
		Price:      r.Price,
		CategoryID: r.CategoryID,
		ImageURL:   r.Img,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

func productRow(p models.Product) ProductRow {
	return ProductRow{
		ID:         p.ID.Hex(),
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID,
		Img:        p.ImageURL,
		CreatedAt:  p.CreatedAt,
	}
}

func orderFromRow(r OrderRow) models.Order {
	items := make([]models.CartItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = models.CartItem{ProductID: it.ProductID, Name: it.Name, Price: it.Price, Qty: it.Qty}
	}
	return models.Order{
		ID:        hexID(r.ID),
		TableCode: r.TableCode,
		Items:     items,
		Total:     r.Total,
		Status:    models.Status(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func orderRow(o models.Order) OrderRow {
	items := make([]OrderItemRow, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemRow{
			OrderID:   o.ID.Hex(),
			Position:  i,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Qty:       it.Qty,
		}
	}
	return OrderRow{
		ID:        o.ID.Hex(),
		TableCode: o.TableCode,
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Items:     items,
	}
}
