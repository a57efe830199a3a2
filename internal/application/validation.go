package application

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "outputPath" -> "output path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"name":       "connection name",
		"url":        "URL",
		"database":   "database name",
		"reference":  "reference connection",
		"compared":   "compared connection",
		"outputPath": "output path",
		"outputDir":  "output directory",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateURL checks that a connection URL is absolute.
// Returns a ValidationError if it has no scheme, no host or cannot be parsed.
// file URLs need a path instead of a host.
func ValidateURL(fieldName, raw string) error {
	if err := ValidateRequired(fieldName, raw); err != nil {
		return err
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || !hasLocation(u) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected an absolute %s, got: %s", formatFieldName(fieldName), raw),
		}
	}
	return nil
}

func hasLocation(u *url.URL) bool {
	if u.Scheme == "file" {
		return u.Host+u.Path+u.Opaque != ""
	}
	return u.Host != ""
}

// ValidateConnectionName rejects names that would be ambiguous on the command line
func ValidateConnectionName(name string) error {
	if err := ValidateRequired("name", name); err != nil {
		return err
	}
	if strings.ContainsAny(name, " \t/") {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("connection name may not contain spaces or slashes: %q", name),
		}
	}
	return nil
}
