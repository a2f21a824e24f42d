package checkout

import (
	"errors"
	"fmt"
)

// ValidationError is surfaced to the caller for user-facing display, never
// swallowed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var (
	ErrEmptyCart         = &ValidationError{Field: "cart", Reason: "cart is empty, nothing to checkout"}
	ErrIllegalTransition = errors.New("illegal transition of order status")
	ErrPaymentDeclined   = errors.New("payment declined")
)
