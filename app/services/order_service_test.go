package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/app/repositories"
	"github.com/shashiranjanraj/pubqr/pkg/event"
)

func newOrderService(t *testing.T) (*OrderService, *repositories.Store) {
	t.Helper()
	store := repositories.NewMemoryStore()
	svc := NewOrderService(store.Orders, store.Catalog)
	svc.Strict = true
	svc.Reprice = false
	clock := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, store
}

func beerAndFries() []models.CartItem {
	return []models.CartItem{
		{ProductID: "p1", Name: "Beer 500ml", Price: 6500, Qty: 2},
		{ProductID: "p3", Name: "Fries", Price: 4500, Qty: 1},
	}
}

func TestPlaceComputesTotal(t *testing.T) {
	svc, _ := newOrderService(t)
	o, err := svc.Place(context.Background(), PlaceOrderInput{TableCode: "T12", Items: beerAndFries()})
	require.NoError(t, err)
	assert.Equal(t, int64(17500), o.Total)
	assert.Equal(t, models.StatusPending, o.Status)
	assert.False(t, o.ID.IsZero())
	assert.False(t, o.CreatedAt.IsZero())
}

func TestPlaceRejectsBadInput(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   PlaceOrderInput
		msg  string
	}{
		{"no table", PlaceOrderInput{Items: beerAndFries()}, msgOrderRequired},
		{"blank table", PlaceOrderInput{TableCode: "  ", Items: beerAndFries()}, msgOrderRequired},
		{"no items", PlaceOrderInput{TableCode: "T1"}, msgOrderRequired},
		{"zero qty", PlaceOrderInput{TableCode: "T1", Items: []models.CartItem{{ProductID: "p1", Name: "Beer", Price: 6500}}}, ""},
		{"zero price", PlaceOrderInput{TableCode: "T1", Items: []models.CartItem{{ProductID: "p1", Name: "Beer", Qty: 1}}}, ""},
		{"qty over limit", PlaceOrderInput{TableCode: "T1", Items: []models.CartItem{{ProductID: "p1", Name: "Beer", Price: 6500, Qty: 1000}}}, ""},
		{"line overflows", PlaceOrderInput{TableCode: "T1", Items: []models.CartItem{{ProductID: "p1", Name: "Beer", Price: 1 << 62, Qty: 2}}}, "order total is too large"},
		{"sum overflows", PlaceOrderInput{TableCode: "T1", Items: []models.CartItem{
			{ProductID: "p1", Name: "Beer", Price: math.MaxInt64 / 2, Qty: 1},
			{ProductID: "p2", Name: "Fries", Price: math.MaxInt64 / 2, Qty: 1},
			{ProductID: "p3", Name: "Mojito", Price: 2, Qty: 1},
		}}, "order total is too large"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Place(ctx, tc.in)
			require.ErrorIs(t, err, ErrValidation)
			if tc.msg != "" {
				assert.EqualError(t, err, tc.msg)
			}
		})
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPlaceReprice(t *testing.T) {
	svc, store := newOrderService(t)
	ctx := context.Background()
	svc.Reprice = true

	beer := models.Product{Name: "Beer 500ml", Price: 6500, CreatedAt: time.Now()}
	require.NoError(t, store.Catalog.CreateProduct(ctx, &beer))

	o, err := svc.Place(ctx, PlaceOrderInput{TableCode: "T1", Items: []models.CartItem{
		{ProductID: beer.ID.Hex(), Name: "cheap beer", Price: 1, Qty: 3},
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(19500), o.Total)
	assert.Equal(t, "Beer 500ml", o.Items[0].Name)

	_, err = svc.Place(ctx, PlaceOrderInput{TableCode: "T1", Items: []models.CartItem{
		{ProductID: "p404", Name: "ghost", Price: 1, Qty: 1},
	}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()
	for _, table := range []string{"A", "B", "C"} {
		_, err := svc.Place(ctx, PlaceOrderInput{TableCode: table, Items: beerAndFries()})
		require.NoError(t, err)
	}
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{list[0].TableCode, list[1].TableCode, list[2].TableCode})
}

func TestAdvanceThroughPipeline(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()
	o, err := svc.Place(ctx, PlaceOrderInput{TableCode: "T5", Items: beerAndFries()})
	require.NoError(t, err)

	for _, want := range []models.Status{models.StatusInProgress, models.StatusServed, models.StatusPaid, models.StatusPaid} {
		o, err = svc.UpdateStatus(ctx, o.ID.Hex(), string(models.NextStatus(o.Status)))
		require.NoError(t, err)
		assert.Equal(t, want, o.Status)
	}
	assert.Equal(t, int64(17500), o.Total)
}

func TestUpdateStatusErrors(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()
	o, err := svc.Place(ctx, PlaceOrderInput{TableCode: "T5", Items: beerAndFries()})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, o.ID.Hex(), "cancelled")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, "not-an-id", "served")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)

	_, err = svc.UpdateStatus(ctx, "65f1c0a2b3d4e5f601234567", "served")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)

	_, err = svc.UpdateStatus(ctx, o.ID.Hex(), "paid")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	svc.Strict = false
	got, err := svc.UpdateStatus(ctx, o.ID.Hex(), "paid")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, got.Status)

	got, err = svc.UpdateStatus(ctx, o.ID.Hex(), "pending")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestOrderEventsFired(t *testing.T) {
	t.Cleanup(event.Flush)
	svc, _ := newOrderService(t)
	ctx := context.Background()

	var mu sync.Mutex
	var got []string
	event.Listen(event.OrderCreated, func(p interface{}) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, "created:"+p.(models.Order).TableCode)
	})
	event.Listen(event.OrderStatusChanged, func(p interface{}) {
		mu.Lock()
		defer mu.Unlock()
		c := p.(StatusChange)
		got = append(got, c.RoutingKey()+":"+string(c.From))
	})

	o, err := svc.Place(ctx, PlaceOrderInput{TableCode: "T7", Items: beerAndFries()})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, o.ID.Hex(), "in_progress")
	require.NoError(t, err)

	assert.Equal(t, []string{"created:T7", "order.status.in_progress:pending"}, got)
}

func TestListByStatus(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()
	a, _ := svc.Place(ctx, PlaceOrderInput{TableCode: "A", Items: beerAndFries()})
	_, _ = svc.Place(ctx, PlaceOrderInput{TableCode: "B", Items: beerAndFries()})
	_, err := svc.UpdateStatus(ctx, a.ID.Hex(), "in_progress")
	require.NoError(t, err)

	pending, err := svc.ListByStatus(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "B", pending[0].TableCode)

	_, err = svc.ListByStatus(ctx, "bogus")
	assert.True(t, errors.Is(err, ErrValidation))
}
