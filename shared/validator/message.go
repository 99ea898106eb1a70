package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be less than or equal to {param}",
	"min":         "{field} must be greater than or equal to {param}",
	"email":       "{field} must be a valid email address",
	"len":         "{field} must be exactly {param} characters long",
	"uuid":        "{field} must be a valid UUID",
	"dateonly":    "{field} must be a date in YYYY-MM-DD format",
	"bookingcode": "{field} must contain only uppercase letters and digits",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
	"alphanum":    "{field} must contain only letters and digits",
	"nefield":     "{field} must differ from {param}",
}

func describe(fieldErr val.FieldError) string {
	template, ok := messages[fieldErr.Tag()]
	if !ok {
		return fieldErr.Error()
	}

	return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
}

// message lists every violation, in struct order, separated by "; ".
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		parts = append(parts, describe(fieldErr))
	}

	return strings.Join(parts, "; ")
}
