package auth

import (
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("unreserved", func(fl validator.FieldLevel) bool {
		return !IsReservedUsername(fl.Field().String())
	})
	return v
}

// IsReservedUsername reports names that would collide with the group recipient.
func IsReservedUsername(username string) bool {
	return strings.EqualFold(strings.TrimSpace(username), chat.GroupChannel)
}

type RegisterRequest struct {
	Username string `validate:"required,alphanum,min=3,max=32,unreserved"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=72"`
}

func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	return nil
}

// CreateUserRequest is the admin flavour, the email is optional.
type CreateUserRequest struct {
	Username string `validate:"required,alphanum,min=3,max=32,unreserved"`
	Email    string `validate:"omitempty,email"`
	Password string `validate:"required,min=6,max=72"`
	Role     string `validate:"required,oneof=admin agent user"`
}

func ValidateCreateUser(req CreateUserRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	return nil
}

// ValidatePin accepts 4 to 8 digits
func ValidatePin(pin string) error {
	if err := validate.Var(pin, "min=4,max=8"); err != nil {
		return errors.ErrInvalidSettings
	}
	for _, char := range pin {
		if !unicode.IsDigit(char) {
			return errors.ErrInvalidSettings
		}
	}
	return nil
}
