// Package cart holds a customer's in-progress order lines.
//
// A Cart belongs to a single customer session and is never shared, so it
// carries no locking. Lines keep insertion order; quantities are always
// positive.
package cart

import (
	"errors"
	"strings"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/pkg/collection"
)

var (
	// ErrEmptyCart is returned when an order is submitted with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoTable is returned when an order is submitted without a table code.
	ErrNoTable = errors.New("table code is required")
)

// Cart is an ordered list of lines keyed by product id.
type Cart struct {
	lines []models.CartItem
}

// New returns an empty cart.
func New() *Cart { return &Cart{} }

// Add puts one unit of p in the cart.
func (c *Cart) Add(p models.Product) {
	id := p.ID.Hex()
	if i := c.index(id); i >= 0 {
		c.lines[i].Qty++
		return
	}
	c.lines = append(c.lines, models.CartItem{
		ProductID: id,
		Name:      p.Name,
		Price:     p.Price,
		Qty:       1,
	})
}

// Decrement removes one unit of productID, dropping the line when it hits zero.
// Unknown ids are ignored.
func (c *Cart) Decrement(productID string) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	c.lines[i].Qty--
	if c.lines[i].Qty <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() { c.lines = nil }

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []models.CartItem {
	out := make([]models.CartItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// Snapshot is the item list sent when the order is placed.
func (c *Cart) Snapshot() []models.CartItem { return c.Lines() }

// Len is the number of distinct lines.
func (c *Cart) Len() int { return len(c.lines) }

// Count is the number of units across all lines.
func (c *Cart) Count() int64 {
	var n int64
	for _, l := range c.lines {
		n += l.Qty
	}
	return n
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Total is the sum of price*qty over all lines.
func (c *Cart) Total() int64 { return models.ComputeTotal(c.lines) }

// Validate checks that the cart can be submitted for tableCode.
func (c *Cart) Validate(tableCode string) error {
	if c.Empty() {
		return ErrEmptyCart
	}
	if strings.TrimSpace(tableCode) == "" {
		return ErrNoTable
	}
	return nil
}

func (c *Cart) index(productID string) int {
	return collection.IndexOf(c.lines, func(l models.CartItem) bool { return l.ProductID == productID })
}
