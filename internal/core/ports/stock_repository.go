package ports

import (
	"context"
	"errors"
	"fmt"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError names the product whose stock could not cover the
// requested quantity.
type InsufficientStockError struct {
	ProductID string
	Requested int
}

func NewInsufficientStockError(productID string, requested int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s, requested %d", ErrInsufficientStock, e.ProductID, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// StockRepository is the inventory collaborator used at checkout.
type StockRepository interface {
	// Decrement atomically removes quantity units of productID, or returns
	// an InsufficientStockError leaving stock untouched.
	Decrement(ctx context.Context, productID string, quantity int) error

	// Available returns the units currently in stock.
	Available(ctx context.Context, productID string) (int, error)
}
