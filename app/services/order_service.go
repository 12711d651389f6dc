// Package services holds the order, catalog and staff-auth use cases.
// Controllers, the GraphQL schema and the CLI all go through them.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/app/repositories"
	"github.com/shashiranjanraj/pubqr/config"
	"github.com/shashiranjanraj/pubqr/pkg/collection"
	"github.com/shashiranjanraj/pubqr/pkg/event"
	"github.com/shashiranjanraj/pubqr/pkg/logger"
	"github.com/shashiranjanraj/pubqr/pkg/metrics"
	"github.com/shashiranjanraj/pubqr/pkg/validate"
)

const msgOrderRequired = "tableCode and items are required"

// PlaceOrderInput is the body of POST /orders.
type PlaceOrderInput struct {
	TableCode string            `json:"tableCode" validate:"required,max=32"`
	Items     []models.CartItem `json:"items"     validate:"min=1,dive"`
}

// StatusChange is the payload of event.OrderStatusChanged.
type StatusChange struct {
	Order models.Order  `json:"order"`
	From  models.Status `json:"from"`
}

// RoutingKey publishes status changes as order.status.<status>.
func (c StatusChange) RoutingKey() string {
	return "order.status." + string(c.Order.Status)
}

type OrderService struct {
	orders  repositories.OrderRepository
	catalog repositories.CatalogRepository

	// Strict rejects transitions other than "stay" or "next stage".
	Strict bool
	// Reprice replaces submitted names and prices with catalog values.
	Reprice bool

	now func() time.Time
}

func NewOrderService(orders repositories.OrderRepository, catalog repositories.CatalogRepository) *OrderService {
	return &OrderService{
		orders:  orders,
		catalog: catalog,
		Strict:  config.StrictTransitions(),
		Reprice: config.RepriceOrders(),
		now:     time.Now,
	}
}

// Place validates in, fixes the total from its lines and persists a
// pending order.
func (s *OrderService) Place(ctx context.Context, in PlaceOrderInput) (models.Order, error) {
	in.TableCode = strings.TrimSpace(in.TableCode)
	if in.TableCode == "" || len(in.Items) == 0 {
		return models.Order{}, invalid(msgOrderRequired)
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Order{}, invalidFields(errs)
	}

	items := in.Items
	if s.Reprice {
		var err error
		if items, err = s.reprice(ctx, items); err != nil {
			return models.Order{}, err
		}
	}

	if _, err := models.CheckedTotal(items); err != nil {
		return models.Order{}, invalid(err.Error())
	}

	order := models.NewOrder(in.TableCode, items, s.now())
	if err := s.orders.Create(ctx, &order); err != nil {
		return models.Order{}, fmt.Errorf("place order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	logger.WithCtx(ctx).Info("order placed",
		"order_id", order.ID.Hex(),
		"table", order.TableCode,
		"total", order.Total,
	)
	event.Fire(event.OrderCreated, order)
	return order, nil
}

func (s *OrderService) reprice(ctx context.Context, items []models.CartItem) ([]models.CartItem, error) {
	out := make([]models.CartItem, len(items))
	for i, it := range items {
		id, err := models.ParseID(it.ProductID)
		if err != nil {
			return nil, invalid(fmt.Sprintf("unknown product %q", it.ProductID))
		}
		p, err := s.catalog.FindProduct(ctx, id)
		if errors.Is(err, models.ErrProductNotFound) {
			return nil, invalid(fmt.Sprintf("unknown product %q", it.ProductID))
		}
		if err != nil {
			return nil, err
		}
		out[i] = models.CartItem{ProductID: it.ProductID, Name: p.Name, Price: p.Price, Qty: it.Qty}
	}
	return out, nil
}

// List returns every order, newest first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

// ListByStatus narrows List to one status; an empty status keeps all.
func (s *OrderService) ListByStatus(ctx context.Context, status string) ([]models.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil || status == "" {
		return orders, err
	}
	want, err := models.ParseStatus(status)
	if err != nil {
		return nil, invalid(err.Error())
	}
	return collection.Filter(orders, func(o models.Order) bool { return o.Status == want }), nil
}

// Get returns one order. A malformed id is reported as not found.
func (s *OrderService) Get(ctx context.Context, id string) (models.Order, error) {
	oid, err := parseOrderID(id)
	if err != nil {
		return models.Order{}, err
	}
	return s.orders.Find(ctx, oid)
}

// UpdateStatus moves an order to status and returns the stored record.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (models.Order, error) {
	oid, err := parseOrderID(id)
	if err != nil {
		return models.Order{}, err
	}
	to, err := models.ParseStatus(status)
	if err != nil {
		return models.Order{}, invalid(err.Error())
	}

	var from models.Status
	if s.Strict {
		current, err := s.orders.Find(ctx, oid)
		if err != nil {
			return models.Order{}, err
		}
		if !models.CanTransition(current.Status, to) {
			return models.Order{}, fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, current.Status, to)
		}
		from = current.Status
	}

	updated, err := s.orders.UpdateStatus(ctx, oid, from, to)
	if errors.Is(err, models.ErrInvalidTransition) {
		return models.Order{}, fmt.Errorf("%w: order changed concurrently", models.ErrInvalidTransition)
	}
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrderStatusChanges.WithLabelValues(string(updated.Status)).Inc()
	logger.WithCtx(ctx).Info("order status changed",
		"order_id", updated.ID.Hex(),
		"from", from,
		"to", updated.Status,
	)
	event.Fire(event.OrderStatusChanged, StatusChange{Order: updated, From: from})
	return updated, nil
}

func parseOrderID(id string) (primitive.ObjectID, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", models.ErrOrderNotFound, id)
	}
	return oid, nil
}
