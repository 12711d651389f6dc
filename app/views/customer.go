package views

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/pkg/cart"
	"github.com/shashiranjanraj/pubqr/pkg/collection"
	"github.com/shashiranjanraj/pubqr/pkg/logger"
)

// ErrUnknownProduct is returned by Add for an id not on the loaded menu.
var ErrUnknownProduct = errors.New("product is not on the menu")

// TableFromURL reads the table code from the "table" query parameter of the
// URL encoded in a table's QR code.
func TableFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse table url: %w", err)
	}
	table := strings.TrimSpace(u.Query().Get("table"))
	if table == "" {
		return "", cart.ErrNoTable
	}
	return table, nil
}

// CustomerSession is one table's view of the menu, its cart and the orders
// it placed.
type CustomerSession struct {
	api   *Client
	table string

	mu         sync.Mutex
	products   []models.Product
	categories []models.Category
	cart       *cart.Cart
	orders     []models.Order
	trackingID string
}

func NewCustomerSession(api *Client, table string) *CustomerSession {
	return &CustomerSession{api: api, table: table, cart: cart.New()}
}

func (s *CustomerSession) Table() string { return s.table }

// LoadMenu fetches products and categories.
func (s *CustomerSession) LoadMenu(ctx context.Context) error {
	products, err := s.api.Products(ctx, "", "")
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	categories, err := s.api.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.categories = categories
	return nil
}

func (s *CustomerSession) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.categories...)
}

// Filter narrows the loaded menu; "all" or "" matches any category.
func (s *CustomerSession) Filter(categoryID, query string) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.FilterProducts(s.products, categoryID, strings.TrimSpace(query))
}

// Add puts one unit of a menu product in the cart.
func (s *CustomerSession) Add(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := collection.First(s.products, func(p models.Product) bool { return p.ID.Hex() == productID })
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	s.cart.Add(p)
	return nil
}

func (s *CustomerSession) Decrement(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Decrement(productID)
}

func (s *CustomerSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// Cart returns the current lines and their total.
func (s *CustomerSession) Cart() ([]models.CartItem, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines(), s.cart.Total()
}

// PlaceOrder submits the cart. On success the order is prepended to the
// session's list, becomes the tracked order and the cart is emptied. On
// failure nothing local changes.
func (s *CustomerSession) PlaceOrder(ctx context.Context) (models.Order, error) {
	s.mu.Lock()
	if err := s.cart.Validate(s.table); err != nil {
		s.mu.Unlock()
		return models.Order{}, err
	}
	items := s.cart.Snapshot()
	s.mu.Unlock()

	order, err := s.api.PlaceOrder(ctx, s.table, items)
	if err != nil {
		logger.WithCtx(ctx).Warn("place order failed", "table", s.table, "error", err)
		return models.Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]models.Order{order}, s.orders...)
	s.trackingID = order.ID.Hex()
	s.cart.Clear()
	return order, nil
}

// Orders lists what this session placed, newest first.
func (s *CustomerSession) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}

// Track switches tracking to an existing order id.
func (s *CustomerSession) Track(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackingID = id
}

// Tracking returns the last known copy of the tracked order.
func (s *CustomerSession) Tracking() (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trackingID == "" {
		return models.Order{}, false
	}
	return collection.First(s.orders, func(o models.Order) bool { return o.ID.Hex() == s.trackingID })
}

// Refresh refetches the tracked order. Without one it does nothing.
func (s *CustomerSession) Refresh(ctx context.Context) error {
	s.mu.Lock()
	id := s.trackingID
	s.mu.Unlock()
	if id == "" {
		return nil
	}

	order, err := s.api.Order(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := collection.IndexOf(s.orders, func(o models.Order) bool { return o.ID == order.ID }); i >= 0 {
		s.orders[i] = order
	} else {
		s.orders = append([]models.Order{order}, s.orders...)
	}
	return nil
}

// Poll refreshes the tracked order every interval until ctx is done and
// hands each fresh copy to fn. Failed polls are logged and skipped.
func (s *CustomerSession) Poll(ctx context.Context, interval time.Duration, fn func(models.Order)) {
	poll(ctx, interval, func() {
		if err := s.Refresh(ctx); err != nil {
			logger.WithCtx(ctx).Warn("order poll failed", "table", s.table, "error", err)
			return
		}
		if o, ok := s.Tracking(); ok && fn != nil {
			fn(o)
		}
	})
}

// DefaultPollInterval is how often the customer and staff views refresh.
const DefaultPollInterval = 5 * time.Second

// poll runs tick immediately and then on every interval until ctx is done.
// A non-positive interval falls back to DefaultPollInterval.
func poll(ctx context.Context, interval time.Duration, tick func()) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	tick()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			tick()
		}
	}
}
