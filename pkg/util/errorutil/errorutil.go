package errorutil

import (
	"errors"
	"fmt"
)

// ErrInvalidField is the sentinel every field validation failure matches.
var ErrInvalidField = errors.New("invalid field")

// FieldError reports the first field that failed validation.
type FieldError struct {
	Field      string
	Constraint string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Constraint)
}

// Is lets callers match with errors.Is(err, ErrInvalidField).
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// NewInvalidField constructs a FieldError.
func NewInvalidField(field, constraint string) error {
	return &FieldError{Field: field, Constraint: constraint}
}

// Error codes surfaced by DomainError.
const (
	CodeInvalidField = "INVALID_FIELD"
	CodeInvalidInput = "INVALID_INPUT"
	CodeInternal     = "INTERNAL_ERROR"
)

// DomainError standardizes errors reported at the outer edge of the application.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewInvalidInput reports malformed input that never reached the builder.
func NewInvalidInput(message string, err error) error {
	return &DomainError{Code: CodeInvalidInput, Message: message, Err: err}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return &DomainError{
			Code:    CodeInvalidField,
			Message: fmt.Sprintf("%s is invalid", fieldErr.Field),
			Details: map[string]any{
				"field":      fieldErr.Field,
				"constraint": fieldErr.Constraint,
			},
			Err: err,
		}
	}
	return &DomainError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}
