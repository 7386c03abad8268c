package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator builds the request validator used by all handlers. Field
// names in error output come from the json tag so clients see the wire
// names, not Go identifiers.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// buildFieldErrors converts validator errors into the envelope's
// field-to-messages map. Non-validator errors yield a nil map.
func buildFieldErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], fieldErrorMessage(fe))
	}
	return out
}

// fieldErrorMessage maps one validation failure to a user-facing message.
func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "oneof":
		if field == "status" {
			return "Status must be one of pending, in-progress, or completed"
		}
		return fmt.Sprintf("The %s must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("The %s must be a date in format YYYY-MM-DD.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}
