// ABOUTME: Field validation helpers producing field-level error detail
// ABOUTME: Used by the user and contact services before any persistence

package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Loose international/local phone shape: optional +, digits with spaces,
// parens, or dashes, 4 to 20 characters total.
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{2,18}[0-9]$`)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations aggregates field-level failures. A nil or empty Violations means
// the input is valid.
type Violations []Violation

// Error implements the error interface, joining all violations.
func (v Violations) Error() string {
	parts := make([]string, len(v))
	for i, violation := range v {
		parts[i] = fmt.Sprintf("%s: %s", violation.Field, violation.Message)
	}
	return strings.Join(parts, "; ")
}

// AsError returns v as an error, or nil if there are no violations.
func (v Violations) AsError() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Add appends a violation.
func (v *Violations) Add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

// Required adds a violation if the value is blank.
func (v *Violations) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "must not be blank")
	}
}

// MaxLen adds a violation if the value exceeds max characters.
func (v *Violations) MaxLen(field, value string, max int) {
	if len(value) > max {
		v.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

// Email adds a violation if the value is non-empty and not a valid email
// shape.
func (v *Violations) Email(field, value string) {
	if value != "" && !emailRegex.MatchString(value) {
		v.Add(field, "must be a valid email address")
	}
}

// Phone adds a violation if the value is non-empty and doesn't match the
// loose phone pattern.
func (v *Violations) Phone(field, value string) {
	if value != "" && !phoneRegex.MatchString(value) {
		v.Add(field, "must be a valid phone number")
	}
}
