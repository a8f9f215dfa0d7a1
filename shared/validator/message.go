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
	"gt":          "{field} must be greater than {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be at most {param}",
	"min":         "{field} must be at least {param}",
	"email":       "{field} must be a valid email address",
	"dateonly":    "{field} must be a date formatted as YYYY-MM-DD",
	"phone":       "{field} must be a valid phone number",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
	"url":         "{field} must be a valid URL",
	"uuid":        "{field} must be a valid UUID",
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		replacer := strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param())

		return replacer.Replace(template)
	}

	return valErrors.Error()
}
