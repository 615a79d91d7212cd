// Package cart holds the in-memory cart aggregate: line items merged by
// product variant and the totals derived from them.
package cart

import (
	"errors"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// Cart is the set of line items owned by one session. Line items keep their
// insertion order.
type Cart struct {
	SessionID uuid.UUID
	items     []domain.CartItem
	now       func() time.Time
}

// New creates an empty cart for the session
func New(sessionID uuid.UUID) *Cart {
	return &Cart{SessionID: sessionID, now: time.Now}
}

// FromItems rebuilds a cart from persisted line items
func FromItems(sessionID uuid.UUID, items []domain.CartItem) *Cart {
	c := New(sessionID)
	c.items = append(c.items, items...)
	return c
}

// Items returns a copy of the line items
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of line items
func (c *Cart) Len() int {
	return len(c.items)
}

// Find returns the line item holding the given variant
func (c *Cart) Find(productID uuid.UUID, size, color string) (domain.CartItem, bool) {
	for _, item := range c.items {
		if item.SameVariant(productID, size, color) {
			return item, true
		}
	}
	return domain.CartItem{}, false
}

// Get returns the line item with the given id
func (c *Cart) Get(id uuid.UUID) (domain.CartItem, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	return domain.CartItem{}, false
}

func (c *Cart) index(id uuid.UUID) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Add puts quantity units of the product variant in the cart. An existing line
// for the same (product, size, color) grows; otherwise a new line is created.
// The resulting line item is returned along with whether it was newly created.
func (c *Cart) Add(product *domain.Product, quantity int, size, color string) (domain.CartItem, bool, error) {
	if quantity <= 0 {
		return domain.CartItem{}, false, ErrInvalidQuantity
	}

	now := c.now()
	for i := range c.items {
		if c.items[i].SameVariant(product.ID, size, color) {
			c.items[i].Quantity += quantity
			c.items[i].UpdatedAt = now
			return c.items[i], false, nil
		}
	}

	item := domain.CartItem{
		ID:        uuid.New(),
		SessionID: c.SessionID,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.items = append(c.items, item)
	return item, true, nil
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line. It reports whether the line existed.
func (c *Cart) UpdateQuantity(id uuid.UUID, quantity int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.removeAt(i)
		return true
	}
	c.items[i].Quantity = quantity
	c.items[i].UpdatedAt = c.now()
	return true
}

// Remove deletes a line item. Unknown ids are ignored.
func (c *Cart) Remove(id uuid.UUID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	return true
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// TotalItems returns the sum of quantities across all lines
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalAmount returns the sum of price times quantity across all lines
func (c *Cart) TotalAmount() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}
