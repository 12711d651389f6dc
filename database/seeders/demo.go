package seeders

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/app/repositories"
)

func init() {
	Register("demo", SeedDemo)
}

const placeholderImg = "https://placehold.co/80x80"

// SeedDemo inserts three categories, five products and three open orders.
// It refuses to run twice against the same store.
func SeedDemo(ctx context.Context, s *repositories.Store) error {
	existing, err := s.Catalog.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return errors.New("store already has products")
	}

	drinks := models.Category{Name: "Drinks"}
	food := models.Category{Name: "Food / Snacks"}
	coffee := models.Category{Name: "Coffee / Other"}
	for _, c := range []*models.Category{&drinks, &food, &coffee} {
		if err := s.Catalog.CreateCategory(ctx, c); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	menu := []models.Product{
		{Name: "Beer 500ml", Price: 6500, CategoryID: drinks.ID.Hex()},
		{Name: "Mojito", Price: 8000, CategoryID: drinks.ID.Hex()},
		{Name: "Fries", Price: 4500, CategoryID: food.ID.Hex()},
		{Name: "Chicken Wings", Price: 12000, CategoryID: food.ID.Hex()},
		{Name: "Americano", Price: 6000, CategoryID: coffee.ID.Hex()},
	}
	byName := map[string]models.Product{}
	for i := range menu {
		menu[i].ImageURL = placeholderImg
		menu[i].CreatedAt = now.Add(time.Duration(i-len(menu)) * time.Second)
		if err := s.Catalog.CreateProduct(ctx, &menu[i]); err != nil {
			return err
		}
		byName[menu[i].Name] = menu[i]
	}

	line := func(name string, qty int64) models.CartItem {
		p := byName[name]
		return models.CartItem{ProductID: p.ID.Hex(), Name: p.Name, Price: p.Price, Qty: qty}
	}
	demo := []struct {
		table  string
		items  []models.CartItem
		status models.Status
		age    time.Duration
	}{
		{"T3", []models.CartItem{line("Americano", 1)}, models.StatusServed, 15 * time.Minute},
		{"T5", []models.CartItem{line("Mojito", 1)}, models.StatusInProgress, 10 * time.Minute},
		{"T12", []models.CartItem{line("Beer 500ml", 2), line("Fries", 1)}, models.StatusPending, 5 * time.Minute},
	}
	for _, d := range demo {
		o := models.NewOrder(d.table, d.items, now.Add(-d.age))
		o.Status = d.status
		if err := s.Orders.Create(ctx, &o); err != nil {
			return err
		}
	}
	return nil
}
