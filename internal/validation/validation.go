// Package validation holds stateless field checks used by the ticket builder.
//
// Every check returns nil or a *errorutil.FieldError naming the field and the
// violated constraint.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/incident-tickets/pkg/util/errorutil"
)

// Minimal local@domain.tld shape. Not an RFC 5322 validator.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RequireNonBlank fails when value is empty or whitespace only.
func RequireNonBlank(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return errorutil.NewInvalidField(field, "must not be blank")
	}
	return nil
}

// RequireMaxLen fails when value is longer than max runes.
func RequireMaxLen(value string, max int, field string) error {
	if utf8.RuneCountInString(value) > max {
		return errorutil.NewInvalidField(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return nil
}

// RequireEmail fails when value does not look like local@domain.tld.
func RequireEmail(value, field string) error {
	if err := RequireNonBlank(value, field); err != nil {
		return err
	}
	if !emailPattern.MatchString(value) {
		return errorutil.NewInvalidField(field, "must be a valid email address")
	}
	return nil
}

// RequireOneOf fails when value is not in allowed.
func RequireOneOf(value, field string, allowed ...string) error {
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return errorutil.NewInvalidField(field, fmt.Sprintf("must be one of %v", allowed))
}

// RequireRange fails when value is outside [min, max].
func RequireRange(value, min, max int, field string) error {
	if value < min || value > max {
		return errorutil.NewInvalidField(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
	return nil
}

// RequireTicketID fails when the ticket id is blank.
func RequireTicketID(value string) error {
	return RequireNonBlank(value, "id")
}
