package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCart rejects a checkout before any network call is made.
	ErrEmptyCart error = &ValidationError{Reason: "cart is empty"}

	// ErrStockConflict marks a purchase the server refused because another
	// purchase consumed the stock first.
	ErrStockConflict = errors.New("insufficient stock")
)

// ValidationError is raised for requests that are malformed before they ever
// reach the wire.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// ServiceError is a non-success response or transport failure from a remote
// service. Message holds the server's human-readable text when one was sent.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service error (status %d)", e.Status)
	}
	return fmt.Sprintf("service error (status %d): %s", e.Status, e.Message)
}

// IsStockConflict reports whether err is the server rejecting an oversold
// purchase. Status codes are checked first; the message-text fallback exists
// because not every deployment sends a distinct conflict code.
func IsStockConflict(err error) bool {
	if errors.Is(err, ErrStockConflict) {
		return true
	}
	var se *ServiceError
	if errors.As(err, &se) {
		if se.Status == 409 || se.Status == 410 {
			return true
		}
		msg := strings.ToLower(se.Message)
		return strings.Contains(msg, "stock") || strings.Contains(msg, "sold out")
	}
	return false
}
