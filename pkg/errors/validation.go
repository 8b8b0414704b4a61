package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidFormats is the set of output formats the render pipeline can produce.
var ValidFormats = map[string]bool{"svg": true, "json": true, "png": true, "pdf": true}

// ValidateFormat checks that format names a supported output format.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !ValidFormats[format] {
		return New(ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'json', 'png', or 'pdf')", format)
	}
	return nil
}

// ValidatePath validates a file path given on the command line or in a
// config file.
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
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path has leading or trailing whitespace")
	}

	return nil
}

// ValidateMargin checks that a range margin is a finite, non-negative
// fraction of the range extent.
func ValidateMargin(name string, margin float64) error {
	if math.IsNaN(margin) || math.IsInf(margin, 0) {
		return New(ErrCodeInvalidArgument, "%s must be finite, got %v", name, margin)
	}
	if margin < 0 {
		return New(ErrCodeInvalidArgument, "%s must be non-negative, got %v", name, margin)
	}
	return nil
}

// ValidateMaxLabels checks a user-supplied label budget. Budgets below two
// are legal for tick generation (they produce an empty tick set) but are
// rejected at the CLI boundary where they are almost always a typo.
func ValidateMaxLabels(n int) error {
	if n < 2 {
		return New(ErrCodeInvalidInput, "label budget must be at least 2, got %d", n)
	}
	if n > 1000 {
		return New(ErrCodeInvalidInput, "label budget too large (max 1000), got %d", n)
	}
	return nil
}

// ValidateDimensions checks a container size.
func ValidateDimensions(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidInput, "dimensions must be finite")
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "dimensions must be positive, got %vx%v", width, height)
	}
	return nil
}
