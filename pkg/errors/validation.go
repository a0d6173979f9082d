package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxEntityIDLength bounds entity ids accepted from content and event files.
const MaxEntityIDLength = 256

// ValidateEntityID checks an entity id read from an external file.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or surrounding whitespace
//   - Maximum length of MaxEntityIDLength bytes
//
// Ids are also used as connection id fragments, so the "->" separator is
// rejected as well.
func ValidateEntityID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "entity id cannot be empty")
	}
	if len(id) > MaxEntityIDLength {
		return New(ErrCodeInvalidInput, "entity id too long (max %d characters)", MaxEntityIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "entity id %q contains control characters", id)
		}
	}
	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "entity id %q has surrounding whitespace", id)
	}
	if strings.Contains(id, "->") {
		return New(ErrCodeInvalidInput, "entity id %q contains reserved sequence \"->\"", id)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed (case-sensitive).
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
