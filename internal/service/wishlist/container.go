package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"slices"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/storage"
)

const StoreKey = "wishlist"

// Container is one session's set of wishlisted product ids, kept in insertion order.
type Container struct {
	mu     sync.Mutex
	store  storage.Store
	logger *log.Logger
	ids    []string
}

func Load(ctx context.Context, store storage.Store, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := &Container{store: store, logger: logger}

	raw, ok, err := store.Get(ctx, StoreKey)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	if ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, fmt.Errorf("decode wishlist: %w", err)
		}
		for _, id := range ids {
			if !slices.Contains(c.ids, id) {
				c.ids = append(c.ids, id)
			}
		}
	}
	return c, nil
}

// Add is a no-op when id is already present.
func (c *Container) Add(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if slices.Contains(c.ids, productID) {
		return nil
	}
	next := append(slices.Clone(c.ids), productID)
	if err := c.commit(ctx, next); err != nil {
		return err
	}
	c.logger.Printf("wishlist: add product=%s size=%d", productID, len(next))
	return nil
}

// Remove is a no-op when id is absent.
func (c *Container) Remove(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := slices.Index(c.ids, productID)
	if idx < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(c.ids), idx, idx+1)
	if err := c.commit(ctx, next); err != nil {
		return err
	}
	c.logger.Printf("wishlist: remove product=%s size=%d", productID, len(next))
	return nil
}

func (c *Container) Contains(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.ids, productID)
}

func (c *Container) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.ids)
}

func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ids)
}

// Products returns the wishlisted products in catalog order. Ids missing from the
// catalog are skipped.
func (c *Container) Products(catalog []domain.Product) []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Product, 0, len(c.ids))
	for _, p := range catalog {
		if slices.Contains(c.ids, p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Container) commit(ctx context.Context, next []string) error {
	payload, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	if err := c.store.Set(ctx, StoreKey, string(payload)); err != nil {
		c.logger.Printf("wishlist: persist error=%v", err)
		return fmt.Errorf("persist wishlist: %w", err)
	}
	c.ids = next
	return nil
}
