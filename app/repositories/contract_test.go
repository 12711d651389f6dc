package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/pubqr/app/models"
)

// runStoreContract exercises behaviour every driver must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) *Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

	t.Run("orders list newest first", func(t *testing.T) {
		s := newStore(t)
		var ids []primitive.ObjectID
		for i, table := range []string{"T1", "T2", "T3"} {
			o := models.NewOrder(table, []models.CartItem{{ProductID: "p1", Name: "Beer 500ml", Price: 6500, Qty: 1}}, base.Add(time.Duration(i)*time.Minute))
			require.NoError(t, s.Orders.Create(ctx, &o))
			ids = append(ids, o.ID)
		}

		list, err := s.Orders.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []primitive.ObjectID{ids[2], ids[1], ids[0]}, []primitive.ObjectID{list[0].ID, list[1].ID, list[2].ID})
		assert.Equal(t, "T3", list[0].TableCode)
	})

	t.Run("order round trip keeps lines and total", func(t *testing.T) {
		s := newStore(t)
		items := []models.CartItem{
			{ProductID: "p1", Name: "Beer 500ml", Price: 6500, Qty: 2},
			{ProductID: "p3", Name: "Fries", Price: 4500, Qty: 1},
		}
		o := models.NewOrder("T12", items, base)
		require.NoError(t, s.Orders.Create(ctx, &o))

		got, err := s.Orders.Find(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(17500), got.Total)
		assert.Equal(t, models.StatusPending, got.Status)
		assert.Equal(t, items, got.Items)
		assert.True(t, base.Equal(got.CreatedAt))
	})

	t.Run("update status", func(t *testing.T) {
		s := newStore(t)
		o := models.NewOrder("T5", []models.CartItem{{ProductID: "p2", Name: "Mojito", Price: 8000, Qty: 1}}, base)
		require.NoError(t, s.Orders.Create(ctx, &o))

		updated, err := s.Orders.UpdateStatus(ctx, o.ID, models.StatusPending, models.StatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, updated.Status)
		assert.Equal(t, o.Total, updated.Total)

		_, err = s.Orders.UpdateStatus(ctx, o.ID, models.StatusPending, models.StatusInProgress)
		assert.ErrorIs(t, err, models.ErrInvalidTransition)

		updated, err = s.Orders.UpdateStatus(ctx, o.ID, "", models.StatusPaid)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPaid, updated.Status)

		_, err = s.Orders.UpdateStatus(ctx, primitive.NewObjectID(), "", models.StatusPaid)
		assert.ErrorIs(t, err, models.ErrOrderNotFound)
		_, err = s.Orders.UpdateStatus(ctx, primitive.NewObjectID(), models.StatusPending, models.StatusInProgress)
		assert.ErrorIs(t, err, models.ErrOrderNotFound)
	})

	t.Run("find unknown order", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Orders.Find(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, models.ErrOrderNotFound)
	})

	t.Run("catalog", func(t *testing.T) {
		s := newStore(t)
		drinks := models.Category{Name: "Drinks"}
		require.NoError(t, s.Catalog.CreateCategory(ctx, &drinks))
		assert.False(t, drinks.ID.IsZero())

		beer := models.Product{Name: "Beer 500ml", Price: 6500, CategoryID: drinks.ID.Hex(), CreatedAt: base}
		mojito := models.Product{Name: "Mojito", Price: 8000, CategoryID: drinks.ID.Hex(), CreatedAt: base.Add(time.Minute)}
		require.NoError(t, s.Catalog.CreateProduct(ctx, &beer))
		require.NoError(t, s.Catalog.CreateProduct(ctx, &mojito))

		products, err := s.Catalog.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Mojito", products[0].Name)

		updated, err := s.Catalog.SetProductImage(ctx, beer.ID, "/storage/products/beer.png")
		require.NoError(t, err)
		assert.Equal(t, "/storage/products/beer.png", updated.ImageURL)

		_, err = s.Catalog.SetProductImage(ctx, primitive.NewObjectID(), "x")
		assert.ErrorIs(t, err, models.ErrProductNotFound)
		_, err = s.Catalog.FindProduct(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, models.ErrProductNotFound)

		cats, err := s.Catalog.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.Equal(t, "Drinks", cats[0].Name)

		found, err := s.Catalog.FindCategory(ctx, drinks.ID)
		require.NoError(t, err)
		assert.Equal(t, drinks, found)
		_, err = s.Catalog.FindCategory(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, models.ErrCategoryNotFound)
	})
}
