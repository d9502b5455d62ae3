// Package validation checks untrusted request input against declared shape
// constraints before it reaches hashing or persistence.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"memberportal/internal/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SignupForm is the declared shape of signup input.
type SignupForm struct {
	Username string `validate:"required,alphanum,max=20"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,max=20"`
}

// LoginForm is the declared shape of login input.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,max=20"`
}

// LookupForm is the declared shape of the username-lookup input. It is
// shape-only (any string up to 20 characters passes), which is what makes
// the lookup demo endpoint injectable.
type LookupForm struct {
	User string `validate:"required,max=20"`
}

// Validate checks v against its declared constraints. On violation it
// returns a validation error carrying a human-readable message for the
// first violated constraint; callers must not proceed on error.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.Validation(messageFor(fieldErrs[0]))
	}

	return apperrors.Validation("invalid input")
}

func messageFor(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "email must be a valid email address"
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and digits", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
