package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/pkg/collection"
)

// SQLCatalog stores products and categories through gorm.
type SQLCatalog struct {
	db *gorm.DB
}

// SQLOrders stores orders and their lines through gorm.
type SQLOrders struct {
	db *gorm.DB
}

// NewSQLStore wraps an open gorm connection. Tables must already exist
// (`pubqr migrate`).
func NewSQLStore(db *gorm.DB) *Store {
	return &Store{
		Driver:  "sql",
		Catalog: &SQLCatalog{db: db},
		Orders:  &SQLOrders{db: db},
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func (r *SQLCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []ProductRow
	if err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("repositories: list products: %w", err)
	}
	return collection.Map(rows, productFromRow), nil
}

func (r *SQLCatalog) FindProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var row ProductRow
	err := r.db.WithContext(ctx).Where("id = ?", id.Hex()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, notFound(models.ErrProductNotFound, id)
	}
	if err != nil {
		return models.Product{}, err
	}
	return productFromRow(row), nil
}

func (r *SQLCatalog) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	row := productRow(*p)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("repositories: insert product: %w", err)
	}
	return nil
}

func (r *SQLCatalog) SetProductImage(ctx context.Context, id primitive.ObjectID, url string) (models.Product, error) {
	res := r.db.WithContext(ctx).Model(&ProductRow{}).Where("id = ?", id.Hex()).Update("img", url)
	if res.Error != nil {
		return models.Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Product{}, notFound(models.ErrProductNotFound, id)
	}
	return r.FindProduct(ctx, id)
}

func (r *SQLCatalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []CategoryRow
	if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("repositories: list categories: %w", err)
	}
	return collection.Map(rows, categoryFromRow), nil
}

func (r *SQLCatalog) FindCategory(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var row CategoryRow
	err := r.db.WithContext(ctx).Where("id = ?", id.Hex()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, notFound(models.ErrCategoryNotFound, id)
	}
	if err != nil {
		return models.Category{}, err
	}
	return categoryFromRow(row), nil
}

func (r *SQLCatalog) CreateCategory(ctx context.Context, c *models.Category) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	row := CategoryRow{ID: c.ID.Hex(), Name: c.Name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("repositories: insert category: %w", err)
	}
	return nil
}

func (r *SQLOrders) Create(ctx context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	row := orderRow(*o)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return fmt.Errorf("repositories: insert order: %w", err)
	}
	return nil
}

func (r *SQLOrders) List(ctx context.Context) ([]models.Order, error) {
	var rows []OrderRow
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Order("created_at desc").Order("id desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("repositories: list orders: %w", err)
	}
	return collection.Map(rows, orderFromRow), nil
}

func (r *SQLOrders) Find(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var row OrderRow
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("id = ?", id.Hex()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, notFound(models.ErrOrderNotFound, id)
	}
	if err != nil {
		return models.Order{}, err
	}
	return orderFromRow(row), nil
}

// UpdateStatus is a guarded single-row UPDATE; zero rows affected means the
// order is gone or has moved on.
func (r *SQLOrders) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.Status) (models.Order, error) {
	q := r.db.WithContext(ctx).Model(&OrderRow{}).Where("id = ?", id.Hex())
	if from != "" {
		q = q.Where("status = ?", string(from))
	}
	res := q.Update("status", string(to))
	if res.Error != nil {
		return models.Order{}, res.Error
	}

	o, err := r.Find(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	// MySQL reports zero rows for an UPDATE that keeps the same value
	if from != "" && res.RowsAffected == 0 && o.Status != from {
		return models.Order{}, models.ErrInvalidTransition
	}
	return o, nil
}
