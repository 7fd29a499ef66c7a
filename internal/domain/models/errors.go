package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates the addressed document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrPersistence indicates the remote store rejected a write for a reason
// other than absence.
var ErrPersistence = errors.New("persistence failure")

// ErrAuth indicates the supplied credentials were rejected.
var ErrAuth = errors.New("invalid email or password")

// ErrSubscription indicates a live listener reported a delivery failure.
var ErrSubscription = errors.New("subscription failure")

// ValidationError carries per-field messages for client-side checks that
// failed before any remote call was issued.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds an empty validation error ready to collect
// field messages.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for the named field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

// HasErrors reports whether any field failed validation.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
