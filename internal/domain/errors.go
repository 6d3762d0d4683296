package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrEmptyCart = errors.New("cart is empty")
)

// InsufficientStockError is returned when a decrement would overdraw stock.
// Available is the real quantity at the time of the failed attempt so the
// caller can surface it.
type InsufficientStockError struct {
	ProductID int64
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (available %d)", e.ProductID, e.Available)
}

// LimitExceededError is returned when a cart mutation would push a line
// past the stock currently available for its product.
type LimitExceededError struct {
	ProductID int64
	Available int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("only %d units available for product %d", e.Available, e.ProductID)
}

// PersistenceError wraps an infrastructure fault from durable storage.
// It is distinct from the business outcomes above: a checkout that fails
// with a PersistenceError after stock was decremented does not roll the
// decrements back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
