// utils/validate.go - Request DTO validation helpers
package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct runs struct tag validation on a request DTO.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// FormatValidationErrors flattens validator errors into one readable message.
func FormatValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var msg string
		for i, e := range validationErrors {
			if i > 0 {
				msg += "; "
			}
			switch e.Tag() {
			case "required":
				msg += e.Field() + " is required"
			case "min":
				msg += e.Field() + " must be at least " + e.Param()
			case "max":
				msg += e.Field() + " must be at most " + e.Param()
			case "oneof":
				msg += e.Field() + " must be one of: " + e.Param()
			case "email":
				msg += e.Field() + " must be a valid email"
			default:
				msg += e.Field() + " is invalid"
			}
		}
		return msg
	}
	return err.Error()
}
