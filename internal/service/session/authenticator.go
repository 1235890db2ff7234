package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"storefront/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator verifies credentials and creates accounts. The session container only
// depends on this interface so a real identity backend can replace the mock.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Logout(ctx context.Context) error
}

const (
	DemoEmail    = "demo@example.com"
	demoPassword = "password"

	DefaultLatency = time.Second
)

// MockAuthenticator accepts a single demo account after a simulated round trip.
type MockAuthenticator struct {
	latency  time.Duration
	demoHash []byte
	logger   *log.Logger
}

func NewMockAuthenticator(latency time.Duration, logger *log.Logger) (*MockAuthenticator, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if latency < 0 {
		latency = 0
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	return &MockAuthenticator{latency: latency, demoHash: hash, logger: logger}, nil
}

func demoUser() *domain.User {
	return &domain.User{
		ID:       "1",
		Name:     "John Doe",
		Email:    "john@example.com",
		Wishlist: []string{},
		Orders:   []domain.Order{},
	}
}

func (a *MockAuthenticator) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	if email != DemoEmail || bcrypt.CompareHashAndPassword(a.demoHash, []byte(password)) != nil {
		a.logger.Printf("auth: login rejected email=%s", email)
		return nil, domain.ErrInvalidCredentials
	}
	a.logger.Printf("auth: login ok email=%s", email)
	return demoUser(), nil
}

// Register always succeeds; every call yields a fresh id.
func (a *MockAuthenticator) Register(ctx context.Context, name, email, _ string) (*domain.User, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Wishlist: []string{},
		Orders:   []domain.Order{},
	}
	a.logger.Printf("auth: registered id=%s email=%s", u.ID, email)
	return u, nil
}

func (a *MockAuthenticator) Logout(context.Context) error {
	return nil
}

func (a *MockAuthenticator) wait(ctx context.Context) error {
	if a.latency == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(a.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
