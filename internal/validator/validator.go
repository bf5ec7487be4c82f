// Package validator wraps go-playground/validator so request structs fail
// with a marked validation error.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	ierr "github.com/thrivecorp/platform/internal/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
			}
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// ValidateRequest validates the struct tags of req
func ValidateRequest(req interface{}) error {
	err := get().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ierr.WithError(err).
			WithHint("Requisição inválida").
			Mark(ierr.ErrValidation)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return ierr.WithError(err).
		WithHint(fmt.Sprintf("Campos inválidos ou ausentes: %s", strings.Join(fields, ", "))).
		Mark(ierr.ErrValidation)
}

// EchoValidator plugs ValidateRequest into echo's c.Validate
type EchoValidator struct{}

func (EchoValidator) Validate(i interface{}) error {
	return ValidateRequest(i)
}
