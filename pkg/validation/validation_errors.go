package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Username":           "Username",
	"Password":           "Password",
	"Email":              "Email",
	"Role":               "Role",
	"CompanyName":        "Company name",
	"Title":              "Job title",
	"Description":        "Description",
	"Name":               "Name",
	"Content":            "Message content",
	"ContactInformation": "Contact information",
	"Keyword":            "Keyword",
	"JobID":              "Job ID",
	"Status":             "Status",
}

// FormatValidationErrors turns a binding error into one readable message per field.
// Errors that are not validator errors (malformed JSON) come back as a single message.
func FormatValidationErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(e.Param(), " ", ", "))
	case "username":
		return fmt.Sprintf("%s must be 3-50 letters, digits, '.', '_' or '-'", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji", label)
	case "app_status":
		return fmt.Sprintf("%s must be one of: PENDING, INTERVIEW, REJECTED", label)
	case "user_role":
		return fmt.Sprintf("%s must be one of: JOBSEEKER, RECRUITER", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
