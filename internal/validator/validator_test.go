package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ierr "github.com/thrivecorp/platform/internal/errors"
)

type periodRequest struct {
	Year  *int `query:"year" validate:"required"`
	Month *int `query:"month" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestValidateRequest(t *testing.T) {
	year, month := 2024, 3

	assert.NoError(t, ValidateRequest(&periodRequest{Year: &year, Month: &month}))

	err := ValidateRequest(&periodRequest{Year: &year})
	assert.True(t, ierr.IsValidation(err))
	assert.Equal(t, "Campos inválidos ou ausentes: month", ierr.UserMessage(err))

	err = ValidateRequest(&loginRequest{Email: "not-an-email"})
	assert.True(t, ierr.IsValidation(err))
	assert.Equal(t, "Campos inválidos ou ausentes: email, password", ierr.UserMessage(err))
}

func TestEchoValidator(t *testing.T) {
	assert.Error(t, EchoValidator{}.Validate(&loginRequest{}))
}
