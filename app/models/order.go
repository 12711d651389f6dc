package models

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/pubqr/pkg/collection"
)

// CartItem is one order line. Name and price are copied at the time the
// item is added so later catalog changes do not alter placed orders.
type CartItem struct {
	ProductID string `bson:"productId" json:"productId" validate:"required"`
	Name      string `bson:"name"      json:"name"      validate:"required"`
	Price     int64  `bson:"price"     json:"price"     validate:"gt=0"`
	Qty       int64  `bson:"qty"       json:"qty"       validate:"gte=1,max=999"`
}

// Subtotal is price times quantity for the line.
func (i CartItem) Subtotal() int64 { return i.Price * i.Qty }

// Order is a placed order for a table.
type Order struct {
	ID        primitive.ObjectID `bson:"_id"       json:"id"`
	TableCode string             `bson:"tableCode" json:"tableCode"`
	Items     []CartItem         `bson:"items"     json:"items"`
	Total     int64              `bson:"total"     json:"total"`
	Status    Status             `bson:"status"    json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ComputeTotal sums price*qty over items.
func ComputeTotal(items []CartItem) int64 {
	return collection.SumInt(items, CartItem.Subtotal)
}

// CheckedTotal is ComputeTotal for untrusted lines. It returns
// ErrTotalOverflow instead of wrapping around.
func CheckedTotal(items []CartItem) (int64, error) {
	var total int64
	for _, it := range items {
		sub, ok := mulInt64(it.Price, it.Qty)
		if !ok {
			return 0, ErrTotalOverflow
		}
		if total, ok = addInt64(total, sub); !ok {
			return 0, ErrTotalOverflow
		}
	}
	return total, nil
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	return c, c/b == a
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

// NewOrder builds a pending order with its total fixed from items.
func NewOrder(tableCode string, items []CartItem, now time.Time) Order {
	lines := make([]CartItem, len(items))
	copy(lines, items)
	return Order{
		ID:        primitive.NewObjectID(),
		TableCode: tableCode,
		Items:     lines,
		Total:     ComputeTotal(lines),
		Status:    StatusPending,
		CreatedAt: now.UTC(),
	}
}

// ParseID converts a hex id from a URL or request body into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(strings.TrimSpace(hex))
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
