package account

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cbuclub/internal/common"
	"github.com/go-playground/validator/v10"
)

// VerifyForm is the roster verification input.
type VerifyForm struct {
	StudentNumber string `validate:"required,studentno"`
	Nickname      string `validate:"required"`
}

// LoginForm is the login input; StudentID may carry StudentIDPrefix.
type LoginForm struct {
	StudentID string `validate:"required"`
	Password  string `validate:"required"`
}

// PasswordForm is the change-password input. Current is required by the
// form but never sent to the backend.
type PasswordForm struct {
	Current string `validate:"required"`
	New     string `validate:"required,pwpolicy"`
	Confirm string `validate:"required,eqfield=New"`
}

// CanSubmit reports whether the form may be submitted.
func (f PasswordForm) CanSubmit() bool {
	return Validate(f) == nil
}

// FieldError describes the first rule a form violated.
type FieldError struct {
	Field string
	Rule  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s failed %q", e.Field, e.Rule)
}

func (e *FieldError) Unwrap() error { return common.ErrInvalidFormat }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("studentno", func(fl validator.FieldLevel) bool {
		return ValidStudentNumber(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("pwpolicy", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks one of the forms above. A violation is returned as
// *FieldError, which matches common.ErrInvalidFormat.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &FieldError{Field: ve[0].Field(), Rule: ve[0].Tag()}
	}
	return fmt.Errorf("validate form: %w", err)
}
