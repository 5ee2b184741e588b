package service

import (
	"errors"
	"strings"
)

const (
	MessageRequiredFields = "Please fill in all required fields."
)

// ErrValidation matches every ValidationError through errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError is a local rejection of a mutation. It is raised before
// any backend call is made.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + " (" + strings.Join(e.Fields, ", ") + ")"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError returns a ValidationError with the given message.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

// fieldCheck collects the names of missing fields in declaration order.
type fieldCheck struct {
	missing []string
}

func (f *fieldCheck) require(name string, present bool) {
	if !present {
		f.missing = append(f.missing, name)
	}
}

func (f *fieldCheck) err() error {
	if len(f.missing) == 0 {
		return nil
	}
	return NewValidationError(MessageRequiredFields, f.missing...)
}
