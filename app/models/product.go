package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/pubqr/pkg/collection"
)

// Category groups products on the menu.
type Category struct {
	ID   primitive.ObjectID `bson:"_id"  json:"id"`
	Name string             `bson:"name" json:"name"`
}

// Product is a menu entry. Price is in whole currency units.
type Product struct {
	ID         primitive.ObjectID `bson:"_id"        json:"id"`
	Name       string             `bson:"name"       json:"name"`
	Price      int64              `bson:"price"      json:"price"`
	CategoryID string             `bson:"categoryId" json:"categoryId"`
	ImageURL   string             `bson:"img"        json:"img,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"  json:"createdAt"`
}

// FilterProducts returns the products in category whose name contains query
// (case-insensitive). An empty category or "all" matches every category.
func FilterProducts(products []Product, category, query string) []Product {
	return collection.Filter(products, func(p Product) bool { return p.Matches(category, query) })
}

// Matches reports whether p belongs to category and its name contains query.
func (p Product) Matches(category, query string) bool {
	if category != "" && category != "all" && p.CategoryID != category {
		return false
	}
	return containsFold(p.Name, query)
}
