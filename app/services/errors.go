package services

import (
	"errors"
	"sort"
	"strings"
)

// ErrValidation marks bad input; controllers answer it with 400.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the message for the client and optional
// per-field messages.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e.Fields[k]
	}
	return strings.Join(msgs, " ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

func invalidFields(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
