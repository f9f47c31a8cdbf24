package order

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to order")
	ErrNotFound          = errors.New("order not found")
	ErrNotOwner          = errors.New("order belongs to another user")
	ErrInvalidTransition = errors.New("illegal order status transition")
)

// ValidationError reports a missing shipping field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("shipping field %q is required", e.Field)
}

// InsufficientStockError names the product that cannot cover the
// requested quantity. It is the only failure that can arise from a
// race between concurrent placements.
type InsufficientStockError struct {
	ProductID   int
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("insufficient stock for %s", e.ProductName)
	}
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}
