package domain

import (
	"errors"
	"fmt"
)

// ErrSaleClosed is returned when an item mutation is attempted on a sale
// that is no longer PENDING.
var ErrSaleClosed = errors.New("sale is closed for item changes")

// ErrEmptySale is returned when finalization is attempted on a sale with no items.
var ErrEmptySale = errors.New("sale has no items")

// ErrAlreadyFinalized is returned when finalization is re-invoked on a
// COMPLETED sale. Callers treat it as a warning, not a hard failure.
var ErrAlreadyFinalized = errors.New("sale already finalized")

// ErrInvalidCatalogRef is returned when an item references a nonexistent
// catalog entry, or neither/both of product and service.
var ErrInvalidCatalogRef = errors.New("invalid catalog reference")

// InsufficientStockError reports that a product cannot cover the requested
// quantity. It is raised informationally at add-item time and
// authoritatively, under row locks, at finalization time.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available", e.ProductName, e.Available)
}
