// Package repositories persists the catalog and orders. Every driver
// (memory, mongo, sql) satisfies the same interfaces and translates its own
// "not found" errors into the sentinels of app/models.
package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/pubqr/app/models"
)

// CatalogRepository stores products and categories.
type CatalogRepository interface {
	// ListProducts returns every product, newest first.
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	// SetProductImage stores url as the product's img and returns the record.
	SetProductImage(ctx context.Context, id primitive.ObjectID, url string) (models.Product, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategory(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
}

// OrderRepository stores placed orders.
type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	// List returns every order, newest first.
	List(ctx context.Context) ([]models.Order, error)
	Find(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	// UpdateStatus sets the order's status to to and returns the updated
	// record. When from is non-empty the write only applies if the stored
	// status still equals from; otherwise models.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.Status) (models.Order, error)
}

// Store bundles one driver's repositories with its connection lifecycle.
type Store struct {
	Driver  string
	Catalog CatalogRepository
	Orders  OrderRepository

	// MongoDB is set for the mongo driver; the log sink writes next to it.
	MongoDB *mongo.Database

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping reports whether the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backing connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func notFound(sentinel error, id primitive.ObjectID) error {
	return fmt.Errorf("%w: %s", sentinel, id.Hex())
}
