package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/storage"
	"github.com/shopspring/decimal"
)

// StoreKey is the key the cart snapshot is persisted under.
const StoreKey = "cart"

// Container owns one session's cart. Every mutation writes the full snapshot to the
// store before it becomes visible; a failed write leaves the cart as it was.
type Container struct {
	mu     sync.Mutex
	store  storage.Store
	logger *log.Logger
	items  []domain.CartItem
}

// Load rehydrates the cart persisted in store. An absent key yields an empty cart.
func Load(ctx context.Context, store storage.Store, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := &Container{store: store, logger: logger}

	raw, ok, err := store.Get(ctx, StoreKey)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &c.items); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
	}
	return c, nil
}

// Add merges quantity into the line with the same product, color and size, or appends
// a new line holding a snapshot of product. Stock is not checked here.
func (c *Container) Add(ctx context.Context, product domain.Product, quantity int, color domain.Color, size domain.Size) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	if !size.Valid() {
		return &domain.ValidationError{Field: "selectedSize", Message: fmt.Sprintf("unknown size %q", size)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := domain.LineKey{ProductID: product.ID, ColorName: color.Name, Size: size}
	next := c.copyItems()
	merged := false
	for i := range next {
		if next[i].Key() == key {
			next[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, domain.CartItem{
			Product:       domain.SnapshotOf(product),
			Quantity:      quantity,
			SelectedColor: color,
			SelectedSize:  size,
		})
	}

	if err := c.commit(ctx, next); err != nil {
		return err
	}
	c.logger.Printf("cart: add product=%s color=%s size=%s qty=%d merged=%t", product.ID, color.Name, size, quantity, merged)
	return nil
}

// Remove drops every line of productID regardless of color or size.
func (c *Container) Remove(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]domain.CartItem, 0, len(c.items))
	for _, item := range c.items {
		if item.Product.ID != productID {
			next = append(next, item)
		}
	}
	if err := c.commit(ctx, next); err != nil {
		return err
	}
	c.logger.Printf("cart: remove product=%s lines=%d", productID, len(c.items))
	return nil
}

// UpdateQuantity sets quantity on every line of productID. Callers clamp the value.
func (c *Container) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.copyItems()
	for i := range next {
		if next[i].Product.ID == productID {
			next[i].Quantity = quantity
		}
	}
	if err := c.commit(ctx, next); err != nil {
		return err
	}
	c.logger.Printf("cart: update product=%s qty=%d", productID, quantity)
	return nil
}

func (c *Container) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.commit(ctx, []domain.CartItem{}); err != nil {
		return err
	}
	c.logger.Printf("cart: clear")
	return nil
}

// Items returns a copy of the cart lines in insertion order.
func (c *Container) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyItems()
}

// Total sums snapshot price times quantity over all lines.
func (c *Container) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return subtotal(c.items)
}

// Count sums quantities, for a badge.
func (c *Container) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Container) commit(ctx context.Context, next []domain.CartItem) error {
	payload, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.store.Set(ctx, StoreKey, string(payload)); err != nil {
		c.logger.Printf("cart: persist error=%v", err)
		return fmt.Errorf("persist cart: %w", err)
	}
	c.items = next
	return nil
}

func (c *Container) copyItems() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func subtotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
