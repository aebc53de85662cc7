package kepler

import (
	"errors"
	"fmt"
)

// ErrDomain is the root of every domain violation: use errors.Is(err, ErrDomain).
var ErrDomain = errors.New("value outside of domain")

// DomainError is returned when a quantity is outside the domain where a computation is defined.
// Nothing is ever clamped silently.
type DomainError struct {
	Quantity string  // Name of the offending quantity, e.g. "x" or "ecc"
	Value    float64 // The value received
	Domain   string  // Human readable domain, e.g. "|x| < 1"
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s=%g outside of domain %s", e.Quantity, e.Value, e.Domain)
}

// Unwrap allows errors.Is to match ErrDomain.
func (e *DomainError) Unwrap() error {
	return ErrDomain
}
