package newsletter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/storage"
	"github.com/go-playground/validator/v10"
)

// The subscriber list is global, not per session. It lives at
// "newsletter:subscribers" in the backing store.
const (
	namespace = "newsletter"
	StoreKey  = "subscribers"
)

const invalidEmailMessage = "Please enter a valid email address"

var validate = validator.New()

type Service struct {
	mu     sync.Mutex
	store  storage.Store
	logger *log.Logger
}

func New(store storage.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{store: storage.NewNamespaced(store, namespace), logger: logger}
}

// Subscribe records email. Subscribing the same address twice is not an error.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return &domain.ValidationError{Field: "email", Message: invalidEmailMessage}
	}
	key := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	subscribers, err := s.load(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(subscribers, key) {
		return nil
	}
	subscribers = append(subscribers, key)

	payload, err := json.Marshal(subscribers)
	if err != nil {
		return fmt.Errorf("encode subscribers: %w", err)
	}
	if err := s.store.Set(ctx, StoreKey, string(payload)); err != nil {
		s.logger.Printf("newsletter: persist error=%v", err)
		return fmt.Errorf("persist subscribers: %w", err)
	}
	s.logger.Printf("newsletter: subscribed count=%d", len(subscribers))
	return nil
}

// Subscribers lists recorded addresses in subscription order.
func (s *Service) Subscribers(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) load(ctx context.Context) ([]string, error) {
	raw, ok, err := s.store.Get(ctx, StoreKey)
	if err != nil {
		return nil, fmt.Errorf("load subscribers: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode subscribers: %w", err)
	}
	return out, nil
}
