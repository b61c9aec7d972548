package calc

import (
	"errors"
	"strings"
)

// ErrorKind identifies a hard validation failure raised by the engine.
// These block forward-moving writes (sale submission, return creation,
// exchange creation) and are never silently coerced.
type ErrorKind string

const (
	// KindPaymentMismatch is raised when a hybrid payment split does not
	// sum to the sale total within Tolerance.
	KindPaymentMismatch ErrorKind = "PaymentMismatch"

	// KindReturnNotEligible is raised when a return references an invalid
	// sale state, an unknown line item, or an over-quantity.
	KindReturnNotEligible ErrorKind = "ReturnNotEligible"

	// KindInvalidDiscount is raised when a discount value is outside the
	// bounds of its kind.
	KindInvalidDiscount ErrorKind = "InvalidDiscount"

	// KindDuplicateSerialInSale is raised when the same serial number
	// appears on more than one line item of a sale.
	KindDuplicateSerialInSale ErrorKind = "DuplicateSerialInSale"

	// KindInvalidLineItem is raised when a line item fails the boundary
	// range checks (quantity, unit price, serial-number rules).
	KindInvalidLineItem ErrorKind = "InvalidLineItem"
)

// ValidationError is a hard validation failure with a human-readable
// message list.
type ValidationError struct {
	Kind     ErrorKind
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + strings.Join(e.Messages, "; ")
}

func newValidationError(kind ErrorKind, messages ...string) *ValidationError {
	return &ValidationError{Kind: kind, Messages: messages}
}

// IsKind reports whether err is a ValidationError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Kind == kind
}

// AsValidationError extracts a ValidationError from err if possible
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
