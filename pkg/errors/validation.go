package errors

import (
	"math"
	"unicode"
)

// ValidateShape checks that labels and values are index-aligned.
// A mismatch is rejected outright instead of truncating to the shorter side.
func ValidateShape(labels, values int) error {
	if labels != values {
		return New(ErrCodeShapeMismatch, "%d labels but %d values", labels, values)
	}
	return nil
}

// ValidateValues rejects negative and non-finite values.
func ValidateValues(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidData, "value %d is not finite", i)
		}
		if v < 0 {
			return New(ErrCodeInvalidData, "value %d is negative (%g)", i, v)
		}
	}
	return nil
}

// ValidateFinite rejects NaN and infinite numbers for the named field.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite", field)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
