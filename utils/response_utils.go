// Package utils holds small response and validation helpers.
package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors flattens validator/v10 errors into one message
// suitable for a 400 response.
func FormatValidationErrors(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		part := fmt.Sprintf("field '%s' failed on the '%s' rule", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			part = fmt.Sprintf("%s (param: %s)", part, fe.Param())
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

// CountWords counts whitespace-separated tokens, discarding empty ones.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// Round1 rounds to one decimal place, used for confidence percentages and
// processing times on the wire.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
