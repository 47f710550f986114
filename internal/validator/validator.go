// Package validator accumulates field-level validation errors for a form
// submission. All rules are evaluated before the input is used anywhere, so
// a single redisplay can report every failing field.
package validator

import (
	"regexp"
	"strings"
	"time"
)

// AlphanumericRX matches strings made up entirely of letters and digits.
var AlphanumericRX = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message. If key already has
// an error it is not overwritten, so the first failure for a field wins.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// NotBlank returns true if value contains any non-whitespace characters.
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MaxChars returns true if the trimmed value is at most n characters long.
func MaxChars(value string, n int) bool {
	return len(strings.TrimSpace(value)) <= n
}

// MinChars returns true if the trimmed value is at least n characters long.
func MinChars(value string, n int) bool {
	return len(strings.TrimSpace(value)) >= n
}

// Matches returns true if value matches the provided compiled regexp.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

// ISODate parses value as an ISO 8601 date-only string.
func ISODate(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
