// Package cart implements the in-memory shopping cart and its pricing rules:
// subtotal arithmetic, single-coupon discounts and the grand-total clamp.
package cart

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"cafe-counter/internal/model"
)

// Item is a single cart line: a menu item reference with its display name and
// unit price frozen at add-time, plus a positive quantity.
type Item struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
}

// Cart holds the selected items and at most one applied coupon for a single
// in-progress order. All methods are safe for concurrent use.
//
// Discount policy: the discount is computed once, when the coupon is applied,
// against the subtotal at that moment. Later cart mutations do NOT rescale it;
// reapplying the coupon does. The total is clamped at zero regardless.
type Cart struct {
	mu         sync.Mutex
	items      []Item
	couponCode string
	discount   float64
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem inserts a menu item with quantity 1, or increments the quantity when
// an item with the same ID is already present.
func (c *Cart) AddItem(id uuid.UUID, name string, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{ID: id, Name: name, Price: price, Quantity: 1})
}

// RemoveItem deletes the matching entry if present. Absent IDs are a no-op.
func (c *Cart) RemoveItem(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *Cart) removeLocked(id uuid.UUID) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity for an item. A non-positive quantity
// behaves as RemoveItem, so the cart never stores qty <= 0.
func (c *Cart) UpdateQuantity(id uuid.UUID, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty <= 0 {
		c.removeLocked(id)
		return
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart and removes any applied coupon.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.couponCode = ""
	c.discount = 0
}

// ApplyCoupon records the coupon and computes its discount against the current
// subtotal. It returns an error without mutating state when minOrder is set
// and the subtotal has not reached it. Applying a new coupon replaces the
// previous one.
func (c *Cart) ApplyCoupon(code, discountType string, discountValue float64, minOrder *float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := c.subtotalLocked()
	if minOrder != nil && subtotal < *minOrder {
		return model.NewDomainError(model.ErrCodeMinOrderNotMet,
			fmt.Sprintf("Minimum order of %.2f required", *minOrder))
	}

	c.couponCode = model.CanonicalCouponCode(code)
	if discountType == model.DiscountTypePercentage {
		c.discount = subtotal * (discountValue / 100)
	} else {
		c.discount = discountValue
	}
	return nil
}

// RemoveCoupon clears the coupon code and resets the discount to zero.
func (c *Cart) RemoveCoupon() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.couponCode = ""
	c.discount = 0
}

// Subtotal is always recomputed from the current items.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked()
}

func (c *Cart) subtotalLocked() float64 {
	var sum float64
	for _, it := range c.items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// Discount returns the currently stored discount amount.
func (c *Cart) Discount() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.discount
}

// Total returns the grand total, floored at zero even when the discount
// exceeds the subtotal.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clampTotal(c.subtotalLocked(), c.discount)
}

// CouponCode returns the applied coupon code, or "" when none is applied.
func (c *Cart) CouponCode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.couponCode
}

// Items returns a copy of the current cart lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// View is a point-in-time snapshot of the cart for API responses.
type View struct {
	Items      []Item  `json:"items"`
	ItemCount  int     `json:"itemCount"`
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`
	CouponCode *string `json:"couponCode,omitempty"`
}

// Snapshot captures items, totals and coupon state atomically.
func (c *Cart) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Item, len(c.items))
	copy(items, c.items)

	var count int
	for _, it := range items {
		count += it.Quantity
	}

	subtotal := c.subtotalLocked()
	v := View{
		Items:     items,
		ItemCount: count,
		Subtotal:  subtotal,
		Discount:  c.discount,
		Total:     clampTotal(subtotal, c.discount),
	}
	if c.couponCode != "" {
		code := c.couponCode
		v.CouponCode = &code
	}
	return v
}

func clampTotal(subtotal, discount float64) float64 {
	total := subtotal - discount
	if total < 0 {
		return 0
	}
	return total
}
