package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pubqr/app/repositories"
	"github.com/shashiranjanraj/pubqr/config"
	"github.com/shashiranjanraj/pubqr/pkg/storage"
)

func TestBootstrapMemory(t *testing.T) {
	config.Set("STORE_DRIVER", "memory")
	config.Set("CACHE_ENABLED", "false")
	config.Set("STORAGE_DISK", "local")
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	config.Set("AMQP_URL", "")

	ctx := context.Background()
	app, err := Bootstrap(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close(ctx) })

	assert.Equal(t, "memory", app.Store.Driver)
	assert.Equal(t, "memory", app.Cache.Driver())
	assert.IsType(t, &storage.Local{}, app.Disk)

	deps, err := app.Deps()
	require.NoError(t, err)
	assert.NotNil(t, deps.GraphQL)
	assert.NotEmpty(t, deps.StorageRoot)

	products, err := app.Catalog.Products(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, products, 5, "memory store is seeded on boot")
	cats, err := app.Catalog.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)
}

func TestBootstrapSeedOnBootDisabled(t *testing.T) {
	config.Set("STORE_DRIVER", "memory")
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	config.Set("SEED_ON_BOOT", "false")
	t.Cleanup(func() { config.Set("SEED_ON_BOOT", "") })

	ctx := context.Background()
	app, err := Bootstrap(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close(ctx) })

	products, err := app.Catalog.Products(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSeedEmptySkipsStockedStore(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	require.NoError(t, seedEmpty(ctx, store))
	require.NoError(t, seedEmpty(ctx, store))

	orders, err := store.Orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestBootstrapSQLMigrates(t *testing.T) {
	config.Set("STORE_DRIVER", "sql")
	config.Set("DB_DRIVER", "sqlite")
	config.Set("DATABASE_DSN", "file:bootstrap_test?mode=memory&cache=shared")
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	t.Cleanup(func() {
		config.Set("STORE_DRIVER", "memory")
		config.Set("DB_DRIVER", "")
		config.Set("DATABASE_DSN", "")
	})

	ctx := context.Background()
	app, err := Bootstrap(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close(ctx) })

	orders, err := app.Orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCloseRunsInReverse(t *testing.T) {
	var got []int
	a := &App{}
	for i := 1; i <= 3; i++ {
		i := i
		a.onClose(func(context.Context) error { got = append(got, i); return nil })
	}
	require.NoError(t, a.Close(context.Background()))
	assert.Equal(t, []int{3, 2, 1}, got)
}
