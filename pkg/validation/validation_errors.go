package validation

import (
	"errors"
	"fmt"
	"strings"

	"taxpro-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to user-friendly labels
var FieldLabels = map[string]string{
	"firstName":   "First name",
	"lastName":    "Last name",
	"email":       "Email",
	"phone":       "Phone",
	"serviceType": "Service",
	"message":     "Message",
}

// FieldMessages holds the inline message shown for a failing form field,
// whichever of its rules failed.
var FieldMessages = map[string]string{
	"firstName":   "First name must be at least 2 characters.",
	"lastName":    "Last name must be at least 2 characters.",
	"email":       "Enter a valid email address.",
	"serviceType": "Please select a service.",
}

// FormatValidationErrors converts validator.ValidationErrors into one message per field
func FormatValidationErrors(err error) domain.FieldErrors {
	fields := domain.FieldErrors{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["_"] = err.Error()
		return fields
	}

	for _, e := range validationErrors {
		name := e.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = formatSingleError(e)
	}
	return fields
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	if msg, ok := FieldMessages[e.Field()]; ok {
		return msg
	}

	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, param)
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid (%s).", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts camelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			r += 'a' - 'A'
		}
		if i == 0 && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		result.WriteRune(r)
	}
	return result.String()
}
