package service

import (
	"net/http"

	"github.com/bottegasoft/bottega-api/internal/application/calc"
	"github.com/bottegasoft/bottega-api/pkg/apperror"
)

// engineError converts a calculation-engine validation failure into an
// AppError carrying the error kind and its message list, so the HTTP layer
// can surface it without losing the distinction between kinds.
func engineError(err error) error {
	ve, ok := calc.AsValidationError(err)
	if !ok {
		return err
	}

	fieldErrors := make([]apperror.FieldError, 0, len(ve.Messages))
	for _, msg := range ve.Messages {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   string(ve.Kind),
			Message: msg,
		})
	}

	return &apperror.AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: string(ve.Kind),
		Errors:  fieldErrors,
	}
}
