package storefront

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var inputValidator = validator.New()

// validateInput checks a request input struct against its validate tags and
// converts any failure into a [KindValidation] *Error. Nothing reaches the
// network when this returns non-nil.
func validateInput(v any) error {
	err := inputValidator.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return &Error{Kind: KindValidation, Message: strings.Join(msgs, "; ")}
	}

	return &Error{Kind: KindValidation, Message: err.Error()}
}

// fieldError converts a single validation failure into the message the
// notice path shows the user.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "please enter a valid email address"
	case "min":
		if field == "password" {
			return fmt.Sprintf("password must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		if field == "price" {
			return "please enter a valid price"
		}
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		if field == "roleid" {
			return "please select a role"
		}
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
