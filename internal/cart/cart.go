// Package cart holds the per-session shopping cart. Carts live only in
// memory and belong to exactly one browser session; nothing here touches the
// database.
package cart

import (
	"sync"
)

// ItemKind tags what a cart line refers to.
type ItemKind string

const (
	KindCake ItemKind = "cake"
	KindMeal ItemKind = "meal"
)

// Item is one purchasable line. ID is unique per purchasable variant
// (product + size), so adding the same ID again merges quantities.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int      `json:"price"`
	Quantity int      `json:"quantity"`
	Kind     ItemKind `json:"kind"`
	Image    string   `json:"image,omitempty"`
}

// Cart is the mutable cart state for one session. Methods are safe for
// concurrent use since a browser can fire overlapping requests.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem appends the item, or merges it into an existing line with the same
// ID by summing quantities. Quantities are taken as given; callers pass >= 1.
func (c *Cart) AddItem(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// RemoveItem drops the whole line with the given ID. Removing an absent ID
// is a no-op, not an error.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Idempotent: clearing an empty cart leaves it empty.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the current lines.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// TotalPrice recomputes the cart total from the lines on every call; it is
// never cached anywhere it could drift from the items.
func (c *Cart) TotalPrice() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range c.items {
		total += item.Price * item.Quantity
	}
	return total
}
