package models_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pubqr/app/models"
)

func TestComputeTotal(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Name: "Beer 500ml", Price: 6500, Qty: 2},
		{ProductID: "p3", Name: "Fries", Price: 4500, Qty: 1},
	}
	assert.EqualValues(t, 17500, models.ComputeTotal(items))
	assert.Zero(t, models.ComputeTotal(nil))
}

func TestCheckedTotal(t *testing.T) {
	total, err := models.CheckedTotal([]models.CartItem{
		{ProductID: "p1", Price: 6500, Qty: 2},
		{ProductID: "p3", Price: 4500, Qty: 1},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 17500, total)

	total, err = models.CheckedTotal([]models.CartItem{{ProductID: "p1", Price: math.MaxInt64, Qty: 1}})
	require.NoError(t, err)
	assert.EqualValues(t, int64(math.MaxInt64), total)

	_, err = models.CheckedTotal([]models.CartItem{{ProductID: "p1", Price: 1 << 62, Qty: 2}})
	assert.ErrorIs(t, err, models.ErrTotalOverflow)

	_, err = models.CheckedTotal([]models.CartItem{
		{ProductID: "p1", Price: math.MaxInt64, Qty: 1},
		{ProductID: "p2", Price: 1, Qty: 1},
	})
	assert.ErrorIs(t, err, models.ErrTotalOverflow)
}

func TestNewOrderFixesTotalAndCopiesItems(t *testing.T) {
	items := []models.CartItem{{ProductID: "p2", Name: "Mojito", Price: 8000, Qty: 1}}
	o := models.NewOrder("T5", items, time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local))

	assert.Equal(t, models.StatusPending, o.Status)
	assert.EqualValues(t, 8000, o.Total)
	assert.False(t, o.ID.IsZero())
	assert.Equal(t, time.UTC, o.CreatedAt.Location())

	items[0].Price = 1
	assert.EqualValues(t, 8000, o.Items[0].Price)
	assert.EqualValues(t, 8000, o.Total)
}

func TestOrderJSONShape(t *testing.T) {
	o := models.NewOrder("T12", []models.CartItem{{ProductID: "p1", Name: "Beer", Price: 6500, Qty: 1}}, time.Now())
	raw, err := json.Marshal(o)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, o.ID.Hex(), m["id"])
	assert.Equal(t, "T12", m["tableCode"])
	assert.Equal(t, "pending", m["status"])
	assert.Contains(t, m, "createdAt")
}

func TestParseID(t *testing.T) {
	o := models.NewOrder("T1", nil, time.Now())
	id, err := models.ParseID(o.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, o.ID, id)

	_, err = models.ParseID("104")
	assert.Error(t, err)
}

func TestFilterProducts(t *testing.T) {
	products := []models.Product{
		{Name: "Beer 500ml", CategoryID: "c1"},
		{Name: "Mojito", CategoryID: "c1"},
		{Name: "Fries", CategoryID: "c2"},
	}
	assert.Len(t, models.FilterProducts(products, "all", ""), 3)
	assert.Len(t, models.FilterProducts(products, "c1", ""), 2)
	got := models.FilterProducts(products, "", "BEER")
	require.Len(t, got, 1)
	assert.Equal(t, "Beer 500ml", got[0].Name)
	assert.Empty(t, models.FilterProducts(products, "c2", "beer"))
}
