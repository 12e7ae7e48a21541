package cart

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Manager is the typed mutation API over the store and its only writer.
// Mutations are load-modify-save over the full cart and serialized through
// a mutex, so the store itself needs no locking.
type Manager struct {
	mu    sync.Mutex
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load returns the current cart. It never fails on missing or corrupt data;
// that reads as an empty cart.
func (m *Manager) Load(ctx context.Context) (*Cart, error) {
	return m.store.Load(ctx)
}

// AddItem merges the item into the cart: a line with the same product id has
// its quantity incremented by qty, otherwise the item is appended.
func (m *Manager) AddItem(ctx context.Context, item Item, qty int) (*Cart, error) {
	if qty < 1 {
		return nil, errors.New("quantity must be at least 1")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if existing := c.find(item.ProductID); existing != nil {
		existing.Quantity += qty
	} else {
		item.Quantity = qty
		c.Items = append(c.Items, item)
	}

	if err := m.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetQuantity replaces the quantity of the matching line. Quantities below 1
// are ignored: removal is always explicit via RemoveItem, never a side effect
// of setting zero. An absent product id is also a no-op.
func (m *Manager) SetQuantity(ctx context.Context, productID string, qty int) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if qty < 1 {
		return c, nil
	}

	existing := c.find(productID)
	if existing == nil || existing.Quantity == qty {
		return c, nil
	}
	existing.Quantity = qty

	if err := m.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem deletes the matching line; an absent id is a no-op, not an error.
func (m *Manager) RemoveItem(ctx context.Context, productID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(c.Items) {
		return c, nil
	}
	c.Items = kept

	if err := m.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the store entirely. During checkout it runs only after the
// server has confirmed the order.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(ctx, &Cart{})
}

func (m *Manager) save(ctx context.Context, c *Cart) error {
	c.UpdatedAt = time.Now()
	return m.store.Save(ctx, c)
}
