// Package errors is the error taxonomy shared by services, repositories and
// handlers. Errors are built with NewError/WithError, carry a user facing hint
// and are marked with one of the sentinel errors below.
package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrDatabase     = errors.New("database error")
	ErrInternal     = errors.New("internal error")
)

// GenericMessage is what callers see for database and internal failures
const GenericMessage = "Erro interno do servidor"

type ErrorBuilder struct {
	err error
}

// NewError starts a new error with a developer facing message
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError wraps an existing error, keeping its stack
func WithError(err error) *ErrorBuilder {
	if err == nil {
		err = errors.New("unknown error")
	}
	return &ErrorBuilder{err: errors.WithStack(err)}
}

// WithHint attaches the message shown to API callers
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

// Mark classifies the error and returns it
func (b *ErrorBuilder) Mark(reference error) error {
	return errors.Mark(b.err, reference)
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsForbidden(err error) bool  { return errors.Is(err, ErrForbidden) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }

// HTTPStatus maps a marked error to its response status.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the hint for client errors. Server side failures always
// collapse to GenericMessage so driver messages never leak.
func UserMessage(err error) string {
	if HTTPStatus(err) >= http.StatusInternalServerError {
		return GenericMessage
	}
	hints := errors.GetAllHints(err)
	if len(hints) == 0 {
		return err.Error()
	}
	return hints[0]
}
