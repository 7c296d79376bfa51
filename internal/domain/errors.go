package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Lookup errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrStatsNotFound       = errors.New("stats not found")
	ErrPreferencesNotFound = errors.New("preferences not found")
	ErrSessionNotFound     = errors.New("session not found")
)

// ValidationError carries per-field detail for a rejected payload. A
// rejected session is never stored and never reaches the stats aggregator.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		fields = append(fields, fmt.Sprintf("%s: %s", f, msg))
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, "; ")
}
