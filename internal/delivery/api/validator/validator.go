// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator validates request payloads bound by echo.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the coordinate rules registered.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	registerCustomValidations(validate)

	return &Validator{validate: validate}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}

func registerCustomValidations(validate *validator.Validate) {
	// Both registrations only fail on an empty tag name.
	_ = validate.RegisterValidation("lat", validateLat)
	_ = validate.RegisterValidation("lng", validateLng)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()

	return lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()

	return lng >= -180.0 && lng <= 180.0
}
