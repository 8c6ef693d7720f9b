package catalog

import (
	"github.com/fairyhunter13/versioned-product-api/internal/store"
	"github.com/pkg/errors"
)

// ErrNotFound reports an unknown product id.
var ErrNotFound = store.ErrNotFound

const (
	ReasonIDMismatch     = "Route id does not match body id"
	ReasonNegativeStock  = "Stock quantity cannot be negative"
	ReasonStockRemaining = "Cannot delete product with remaining stock"
	ReasonStockBelowZero = "Cannot reduce stock below 0"
)

// ValidationError rejects a request whose input breaks a field rule.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// RuleViolationError rejects a well-formed request that a business rule forbids.
type RuleViolationError struct {
	Reason string
}

func (e *RuleViolationError) Error() string { return e.Reason }

func invalid(reason string) error {
	return errors.WithStack(&ValidationError{Reason: reason})
}

func forbidden(reason string) error {
	return errors.WithStack(&RuleViolationError{Reason: reason})
}

func wrapID(err error, id int) error {
	return errors.Wrapf(err, "product %d", id)
}
