package service

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sebas-aldana/brm-client/internal/core/domain"
)

// ProductIndex is the cart's read-side view of the inventory cache. Stock
// ceilings and prices are always checked against the current snapshot, never
// against values frozen when a line was added.
type ProductIndex interface {
	Product(id string) (domain.Product, bool)
}

// Line is one cart entry. Product is the snapshot from the most recent
// successful lookup; it backs Total when the product has since vanished
// from the inventory cache.
type Line struct {
	Product  domain.Product
	Quantity int
}

// Cart is the ephemeral selection for one shopping session. It lives only in
// memory and is emptied on successful checkout. The cart never returns
// errors: an add that would exceed the stock ceiling is a silent no-op.
type Cart struct {
	mu    sync.Mutex
	index ProductIndex
	lines map[string]*Line
}

func NewCart(index ProductIndex) *Cart {
	return &Cart{
		index: index,
		lines: make(map[string]*Line),
	}
}

// Add puts one more unit of the product in the cart, inserting a new line at
// quantity 1 if absent. It is a no-op when the product is missing from the
// inventory cache or the line already sits at the stock ceiling.
func (c *Cart) Add(productID string) {
	p, ok := c.index.Product(productID)
	if !ok {
		// A product that left the cache cannot grow; the line stays removable.
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	line, exists := c.lines[productID]
	qty := 0
	if exists {
		qty = line.Quantity
	}
	if !domain.CanIncrement(p, qty) {
		return
	}
	if !exists {
		c.lines[productID] = &Line{Product: p, Quantity: 1}
		return
	}
	line.Product = p
	line.Quantity++
}

// RemoveOne decrements a line; at quantity 1 the line is deleted outright —
// lines disappear rather than sit at zero.
func (c *Cart) RemoveOne(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[productID]
	if !ok {
		return
	}
	if line.Quantity <= 1 {
		delete(c.lines, productID)
		return
	}
	line.Quantity--
}

// Remove deletes the whole line regardless of quantity.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lines, productID)
}

// Quantity returns the selected quantity for a product, 0 when absent.
func (c *Cart) Quantity(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if line, ok := c.lines[productID]; ok {
		return line.Quantity
	}
	return 0
}

// Total recomputes the cart value on every call so a product repricing shows
// up immediately. Lines whose product vanished from the cache are priced from
// their last-known snapshot.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for id, line := range c.lines {
		price := line.Product.Price
		if p, ok := c.index.Product(id); ok {
			price = p.Price
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Count is the total number of selected units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Lines returns the cart contents sorted by product id.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.ID < out[j].Product.ID })
	return out
}

// Clear empties the cart. Invoked after a successful purchase.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[string]*Line)
}
