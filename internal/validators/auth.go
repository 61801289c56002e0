package validators

import (
	"context"
	"net/mail"

	"github.com/gridboard/mobile-core/models"
)

const minPasswordLength = 8

type authValidator struct{}

// NewAuthValidator validates registration and login bodies: a parseable
// email address and a password of at least eight characters.
func NewAuthValidator() Validator {
	return &authValidator{}
}

func (v *authValidator) Validate(_ context.Context, value any, _ ...string) error {
	switch body := value.(type) {
	case models.RegisterRequest:
		if err := validateEmail(body.Email); err != nil {
			return err
		}
		return validatePassword(body.Password)
	case models.Credentials:
		if err := validateEmail(body.Email); err != nil {
			return err
		}
		if body.Password == "" {
			return ErrEmptyPassword
		}
		return nil
	default:
		return ErrUnsupportedType
	}
}

func validateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) < minPasswordLength:
		return ErrPasswordTooShort
	}
	return nil
}
