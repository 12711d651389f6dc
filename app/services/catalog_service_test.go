package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/app/repositories"
	"github.com/shashiranjanraj/pubqr/pkg/cache"
	"github.com/shashiranjanraj/pubqr/pkg/storage"
)

func newCatalog(t *testing.T) (*CatalogService, *cache.Memory, models.Category) {
	t.Helper()
	store := repositories.NewMemoryStore()
	c := cache.NewMemory()
	disk, err := storage.NewLocal(t.TempDir(), "/storage")
	require.NoError(t, err)

	svc := NewCatalogService(store.Catalog, c, disk)
	drinks, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	return svc, c, drinks
}

func TestCreateAndFilterProducts(t *testing.T) {
	svc, _, drinks := newCatalog(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Beer 500ml", Price: 6500, CategoryID: drinks.ID.Hex()})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Mojito", Price: 8000, CategoryID: drinks.ID.Hex()})
	require.NoError(t, err)

	all, err := svc.Products(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	beer, err := svc.Products(ctx, "all", "BEER")
	require.NoError(t, err)
	require.Len(t, beer, 1)
	assert.Equal(t, "Beer 500ml", beer[0].Name)

	none, err := svc.Products(ctx, "65f1c0a2b3d4e5f601234567", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _, drinks := newCatalog(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{Price: 6500, CategoryID: drinks.ID.Hex()})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Free beer", CategoryID: drinks.ID.Hex()})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Beer", Price: 1, CategoryID: "c1"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Beer", Price: 1, CategoryID: "65f1c0a2b3d4e5f601234567"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Beer", Price: 1, CategoryID: drinks.ID.Hex(), Img: "nope"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProductCacheInvalidatedOnWrite(t *testing.T) {
	svc, c, drinks := newCatalog(t)
	ctx := context.Background()

	_, err := svc.Products(ctx, "", "")
	require.NoError(t, err)
	var cached []models.Product
	require.True(t, c.Get(ctx, ProductsCacheKey, &cached))
	assert.Empty(t, cached)

	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Fries", Price: 4500, CategoryID: drinks.ID.Hex()})
	require.NoError(t, err)
	assert.False(t, c.Get(ctx, ProductsCacheKey, &cached))

	all, err := svc.Products(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSetProductImage(t *testing.T) {
	svc, c, drinks := newCatalog(t)
	ctx := context.Background()
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	p, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Americano", Price: 6000, CategoryID: drinks.ID.Hex()})
	require.NoError(t, err)
	_, _ = svc.Products(ctx, "", "")

	updated, err := svc.SetProductImage(ctx, p.ID.Hex(), strings.NewReader("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.ImageURL, "/storage/products/"+p.ID.Hex()))
	assert.True(t, strings.HasSuffix(updated.ImageURL, ".jpg"))

	var cached []models.Product
	assert.False(t, c.Get(ctx, ProductsCacheKey, &cached))

	_, err = svc.SetProductImage(ctx, p.ID.Hex(), strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.SetProductImage(ctx, "65f1c0a2b3d4e5f601234567", strings.NewReader("x"), "image/png")
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestCreateCategoryValidation(t *testing.T) {
	svc, _, _ := newCatalog(t)
	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: " "})
	assert.ErrorIs(t, err, ErrValidation)

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}
