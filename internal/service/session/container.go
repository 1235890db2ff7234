package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/storage"
)

const StoreKey = "user"

// Container holds the signed-in user of one browser session. A nil user means
// the session is anonymous.
type Container struct {
	mu     sync.Mutex
	store  storage.Store
	auth   Authenticator
	logger *log.Logger
	user   *domain.User
}

func Load(ctx context.Context, store storage.Store, auth Authenticator, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := &Container{store: store, auth: auth, logger: logger}

	raw, ok, err := store.Get(ctx, StoreKey)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if ok {
		var u domain.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		c.user = &u
	}
	return c, nil
}

// Login authenticates and, on success, persists the user. Failures leave the session
// as it was.
func (c *Container) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := c.setUser(ctx, u); err != nil {
		return nil, err
	}
	return c.User(), nil
}

func (c *Container) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	u, err := c.auth.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := c.setUser(ctx, u); err != nil {
		return nil, err
	}
	return c.User(), nil
}

func (c *Container) Logout(ctx context.Context) error {
	if err := c.auth.Logout(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Delete(ctx, StoreKey); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	c.user = nil
	c.logger.Printf("session: logout")
	return nil
}

// User returns a copy of the signed-in user, or nil.
func (c *Container) User() *domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

func (c *Container) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil
}

func (c *Container) setUser(ctx context.Context, u *domain.User) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Set(ctx, StoreKey, string(payload)); err != nil {
		c.logger.Printf("session: persist error=%v", err)
		return fmt.Errorf("persist user: %w", err)
	}
	c.user = u
	c.logger.Printf("session: signed in id=%s", u.ID)
	return nil
}
