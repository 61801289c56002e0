package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrEmptyEmail       = errors.New("email is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password is too short")
)
