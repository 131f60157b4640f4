package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that credentials were presented but are invalid
// (bad password, expired or mismatched token, unverified contact channel).
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is authenticated but lacks the
// role or ownership required for the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that a precondition for a state transition was not
// met against the latest stored state.
var ErrConflict = errors.New("state conflict")

// FieldErrors carries field-keyed validation messages. It wraps
// ErrValidation so errors.Is(err, ErrValidation) holds for callers that
// only care about the category.
type FieldErrors struct {
	Fields map[string]string
}

// NewFieldErrors builds a FieldErrors from alternating key/message pairs.
func NewFieldErrors(pairs ...string) *FieldErrors {
	fe := &FieldErrors{Fields: make(map[string]string, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		fe.Fields[pairs[i]] = pairs[i+1]
	}
	return fe
}

func (e *FieldErrors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *FieldErrors) Unwrap() error {
	return ErrValidation
}
