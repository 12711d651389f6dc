package repositories

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/pubqr/app/models"
)

// Memory keeps everything in process. Slices hold insertion order; listing
// reverses it so the latest write comes first.
type Memory struct {
	mu         sync.RWMutex
	products   []models.Product
	categories []models.Category
	orders     []models.Order
}

// NewMemoryStore returns a Store over a fresh Memory driver.
func NewMemoryStore() *Store {
	m := &Memory{}
	return &Store{Driver: "memory", Catalog: m, Orders: m}
}

func (m *Memory) ListProducts(_ context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Product, len(m.products))
	copy(out, m.products)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) FindProduct(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, notFound(models.ErrProductNotFound, id)
}

func (m *Memory) CreateProduct(_ context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, *p)
	return nil
}

func (m *Memory) SetProductImage(_ context.Context, id primitive.ObjectID, url string) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].ImageURL = url
			return m.products[i], nil
		}
	}
	return models.Product{}, notFound(models.ErrProductNotFound, id)
}

func (m *Memory) ListCategories(_ context.Context) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *Memory) FindCategory(_ context.Context, id primitive.ObjectID) (models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, notFound(models.ErrCategoryNotFound, id)
}

func (m *Memory) CreateCategory(_ context.Context, c *models.Category) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = append(m.categories, *c)
	return nil
}

func (m *Memory) Create(_ context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	stored := *o
	stored.Items = append([]models.CartItem(nil), o.Items...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, stored)
	return nil
}

func (m *Memory) List(_ context.Context) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Order, 0, len(m.orders))
	for i := len(m.orders) - 1; i >= 0; i-- {
		out = append(out, cloneOrder(m.orders[i]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) Find(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return models.Order{}, notFound(models.ErrOrderNotFound, id)
}

func (m *Memory) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to models.Status) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID != id {
			continue
		}
		if from != "" && m.orders[i].Status != from {
			return models.Order{}, models.ErrInvalidTransition
		}
		m.orders[i].Status = to
		return cloneOrder(m.orders[i]), nil
	}
	return models.Order{}, notFound(models.ErrOrderNotFound, id)
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.CartItem(nil), o.Items...)
	return o
}
