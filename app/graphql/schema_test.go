package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/app/repositories"
	"github.com/shashiranjanraj/pubqr/app/services"
	gql "github.com/shashiranjanraj/pubqr/pkg/graphql"
)

func newSchema(t *testing.T) (graphql.Schema, *services.OrderService, *services.CatalogService) {
	t.Helper()
	store := repositories.NewMemoryStore()
	orders := services.NewOrderService(store.Orders, store.Catalog)
	catalog := services.NewCatalogService(store.Catalog, nil, nil)
	schema, err := NewSchema(orders, catalog)
	require.NoError(t, err)
	return schema, orders, catalog
}

func TestQueryProductsAndCategories(t *testing.T) {
	schema, _, catalog := newSchema(t)
	ctx := context.Background()
	drinks, err := catalog.CreateCategory(ctx, services.CreateCategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	_, err = catalog.CreateProduct(ctx, services.CreateProductInput{Name: "Beer 500ml", Price: 6500, CategoryID: drinks.ID.Hex()})
	require.NoError(t, err)
	_, err = catalog.CreateProduct(ctx, services.CreateProductInput{Name: "Mojito", Price: 8000, CategoryID: drinks.ID.Hex()})
	require.NoError(t, err)

	res := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ products(q: "beer") { name price } categories { name } }`,
		Context:       ctx,
	})
	require.Empty(t, res.Errors)

	out, err := json.Marshal(res.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[{"name":"Beer 500ml","price":6500}],"categories":[{"name":"Drinks"}]}`, string(out))
}

func TestQueryOrdersOverHTTP(t *testing.T) {
	schema, orders, _ := newSchema(t)
	ctx := context.Background()
	o, err := orders.Place(ctx, services.PlaceOrderInput{TableCode: "T12", Items: []models.CartItem{
		{ProductID: "p1", Name: "Beer 500ml", Price: 6500, Qty: 2},
		{ProductID: "p3", Name: "Fries", Price: 4500, Qty: 1},
	}})
	require.NoError(t, err)

	srv := httptest.NewServer(gql.Handler(schema))
	defer srv.Close()

	body := `{"query":"query($id: ID!) { order(id: $id) { tableCode total status items { qty } } orders(status: \"pending\") { id } }","variables":{"id":"` + o.ID.Hex() + `"}}`
	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Data struct {
			Order struct {
				TableCode string `json:"tableCode"`
				Total     int64  `json:"total"`
				Status    string `json:"status"`
				Items     []struct {
					Qty int `json:"qty"`
				} `json:"items"`
			} `json:"order"`
			Orders []struct {
				ID string `json:"id"`
			} `json:"orders"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "T12", got.Data.Order.TableCode)
	assert.Equal(t, int64(17500), got.Data.Order.Total)
	assert.Equal(t, "pending", got.Data.Order.Status)
	assert.Len(t, got.Data.Order.Items, 2)
	require.Len(t, got.Data.Orders, 1)
	assert.Equal(t, o.ID.Hex(), got.Data.Orders[0].ID)
}

func TestHandlerRequiresQuery(t *testing.T) {
	schema, _, _ := newSchema(t)
	rec := httptest.NewRecorder()
	gql.Handler(schema).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
