package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidQuantity is returned when a cart add asks for fewer than one unit.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidPromoCode is returned for an unrecognized promo code.
	ErrInvalidPromoCode = errors.New("invalid promo code")
)

// ValidationError reports malformed user input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
