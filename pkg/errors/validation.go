package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxLabelLength bounds planet labels accepted from documents and requests.
const maxLabelLength = 256

// ValidateLabel validates a node label from a graph document or a request.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only labels
//   - No control characters or null bytes
//   - Maximum length of 256 bytes
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid control characters")
		}
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
}

// ValidateURI validates a backend connection string.
// It ensures the URI uses one of the given schemes (e.g. "redis", "mongodb").
func ValidateURI(rawURI string, schemes ...string) error {
	if rawURI == "" {
		return New(ErrCodeInvalidConfig, "URI cannot be empty")
	}

	scheme, _, ok := strings.Cut(rawURI, "://")
	if !ok || scheme == "" {
		return New(ErrCodeInvalidConfig, "URI must include a scheme: %q", rawURI)
	}

	if !slices.Contains(schemes, scheme) {
		return New(ErrCodeInvalidConfig, "URI scheme %q not supported (want %s)", scheme, strings.Join(schemes, ", "))
	}

	return nil
}
