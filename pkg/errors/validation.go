package errors

import (
	"strings"
	"unicode"
)

// ValidateFieldName validates an object field name passed on the command
// line or over HTTP. Field names are identifiers: no whitespace, control
// characters or JSON punctuation.
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "field name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "field name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "field name contains whitespace or control characters")
		}
	}

	if strings.ContainsAny(name, `"{}[]:,`) {
		return New(ErrCodeInvalidInput, "field name contains invalid characters: %q", name)
	}

	return nil
}

// ValidateOutputPath validates a file path the exporter is asked to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..) for relative paths
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if !strings.HasPrefix(path, "/") {
		for _, part := range strings.Split(path, "/") {
			if part == ".." {
				return New(ErrCodeInvalidPath, "relative path cannot contain path traversal sequences (..)")
			}
		}
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed values.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
}
