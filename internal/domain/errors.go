package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned for both unknown admin emails and
	// wrong passwords so login failures are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrOrderNumberTaken signals a unique violation on the order number.
	// Placement regenerates the number and retries a bounded number of times.
	ErrOrderNumberTaken = errors.New("order number already taken")
)

// ValidationError is a client error for malformed or unsatisfiable input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InsufficientStockError names the under-stocked product and what was
// actually available when the request was checked.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: %d available", e.ProductName, e.Available)
}

// NotFoundError is a client error for a missing resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ConflictError is a client error for uniqueness or referential conflicts.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ExternalServiceError wraps a failure from a remote collaborator.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return e.Service + ": " + e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
