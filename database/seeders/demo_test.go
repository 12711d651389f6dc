package seeders

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/app/repositories"
)

func TestRunAllSeedsDemo(t *testing.T) {
	ctx := context.Background()
	s := repositories.NewMemoryStore()

	var out bytes.Buffer
	require.NoError(t, RunAll(ctx, s, &out))
	assert.Contains(t, out.String(), "Running seeder: demo")

	products, err := s.Catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 5)

	cats, err := s.Catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)

	orders, err := s.Orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "T12", orders[0].TableCode)
	assert.Equal(t, int64(17500), orders[0].Total)
	assert.Equal(t, models.StatusPending, orders[0].Status)
	assert.Equal(t, models.StatusServed, orders[2].Status)

	assert.Error(t, RunAll(ctx, s, &out), "second run must refuse")
}
