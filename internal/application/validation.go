package application

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateOneOf checks that value is one of allowed. An empty value passes;
// combine with ValidateRequired when the field is mandatory.
func ValidateOneOf(fieldName, value string, allowed ...string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return &ValidationError{
		Field:   fieldName,
		Message: fmt.Sprintf("expected %s, got: %s", strings.Join(allowed, " or "), value),
	}
}

// formatFieldName converts field names to words for error messages
// (e.g., "sequenceCSV" -> "sequence CSV")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"designPath":   "design path",
		"sequenceName": "sequence name",
		"sequenceCSV":  "sequence CSV",
		"strandID":     "strand ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}
