package products

import (
	"sync"
	"time"
)

// Collection is the session-local snapshot of a seller's product list that
// the dashboard renders from. The status toggle patches it optimistically
// before the persistence call resolves, so the list a seller sees never lags
// their own confirmation.
type Collection struct {
	mu    sync.RWMutex
	items []Product
}

func NewCollection() *Collection { return &Collection{} }

func (c *Collection) ReplaceAll(items []Product) {
	cp := make([]Product, len(items))
	copy(cp, items)
	c.mu.Lock()
	c.items = cp
	c.mu.Unlock()
}

func (c *Collection) Snapshot() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection) Get(id string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.items {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// PatchStatus mutates a single product's {status, sold_at} in place.
// Returns false when the product is not in the snapshot.
func (c *Collection) PatchStatus(id string, sold bool, soldAt *time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Status = statusFor(sold)
			c.items[i].SoldAt = soldAt
			return true
		}
	}
	return false
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
