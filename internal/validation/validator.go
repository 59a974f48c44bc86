// Package validation wraps go-playground/validator with JSON field names
// and domain-error output, so services can validate request structs with
// one call.
package validation

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/forkfulapp/forkful-server/internal/errors"
)

var validate = func() *validator.Validate {
	v := validator.New()
	// Use JSON tag names for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove any options (like omitempty, -)
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})
	return v
}()

// Struct validates a request struct and converts the first failure into
// a VALIDATION domain error with a user-friendly message.
func Struct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				return errors.Validationf("%s is required", field)
			case "email":
				return errors.Validationf("%s must be a valid email address", field)
			case "min":
				return errors.Validationf("%s must be at least %s characters", field, e.Param())
			case "max":
				return errors.Validationf("%s exceeds maximum length of %s characters", field, e.Param())
			case "gte":
				return errors.Validationf("%s must be at least %s", field, e.Param())
			case "lte":
				return errors.Validationf("%s must be at most %s", field, e.Param())
			case "hexcolor":
				return errors.Validationf("%s must be a hex color", field)
			default:
				return errors.Validationf("%s is invalid", field)
			}
		}
	}
	return err
}
