package views

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/pkg/collection"
	"github.com/shashiranjanraj/pubqr/pkg/logger"
)

// ErrUnknownOrder is returned by Advance for an id not on the board.
var ErrUnknownOrder = errors.New("order is not on the board")

// StaffBoard is the staff view: every order, grouped by status.
type StaffBoard struct {
	api *Client

	mu     sync.Mutex
	orders []models.Order
}

func NewStaffBoard(api *Client) *StaffBoard {
	return &StaffBoard{api: api}
}

// Login exchanges pin for a token and loads the board.
func (b *StaffBoard) Login(ctx context.Context, pin string) error {
	if err := b.api.Login(ctx, pin); err != nil {
		logger.WithCtx(ctx).Warn("staff login failed", "error", err)
		return err
	}
	return b.Refresh(ctx)
}

// Refresh refetches every order.
func (b *StaffBoard) Refresh(ctx context.Context) error {
	orders, err := b.api.Orders(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = orders
	return nil
}

// Orders returns the board, newest first.
func (b *StaffBoard) Orders() []models.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Order(nil), b.orders...)
}

// Lists groups the board by status. All four statuses are present, empty
// or not.
func (b *StaffBoard) Lists() map[models.Status][]models.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	groups := collection.GroupBy(b.orders, func(o models.Order) models.Status { return o.Status })
	for _, st := range models.Pipeline {
		if groups[st] == nil {
			groups[st] = []models.Order{}
		}
	}
	return groups
}

func (b *StaffBoard) List(status models.Status) []models.Order {
	return b.Lists()[status]
}

// Advance moves an order to its next status and stores the returned record.
// A paid order is returned unchanged without calling the API.
func (b *StaffBoard) Advance(ctx context.Context, orderID string) (models.Order, error) {
	b.mu.Lock()
	current, ok := collection.First(b.orders, func(o models.Order) bool { return o.ID.Hex() == orderID })
	b.mu.Unlock()
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
	}
	if current.Status.Terminal() {
		return current, nil
	}

	updated, err := b.api.UpdateStatus(ctx, orderID, models.NextStatus(current.Status))
	if err != nil {
		logger.WithCtx(ctx).Warn("advance order failed", "order_id", orderID, "error", err)
		return models.Order{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if i := collection.IndexOf(b.orders, func(o models.Order) bool { return o.ID == updated.ID }); i >= 0 {
		b.orders[i] = updated
	}
	return updated, nil
}

// Poll refreshes the board every interval until ctx is done. Failed polls
// are logged and skipped.
func (b *StaffBoard) Poll(ctx context.Context, interval time.Duration, fn func([]models.Order)) {
	poll(ctx, interval, func() {
		if err := b.Refresh(ctx); err != nil {
			logger.WithCtx(ctx).Warn("board poll failed", "error", err)
			return
		}
		if fn != nil {
			fn(b.Orders())
		}
	})
}
