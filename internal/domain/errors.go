package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type ErrorKind int

const (
	ErrValidation ErrorKind = iota + 1
	ErrAuthorization
	ErrNotFound
	ErrConflict
	ErrStorage
)

// Error is the single error type crossing service boundaries. Validation
// errors carry per-field detail; storage errors wrap the driver error.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == ErrValidation && len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for f := range e.Fields {
			names = append(names, f)
		}
		sort.Strings(names)
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(names, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NewValidationError(fields map[string]string) *Error {
	return &Error{Kind: ErrValidation, Message: "invalid input", Fields: fields}
}

func NewAuthorizationError(msg string) *Error {
	return &Error{Kind: ErrAuthorization, Message: msg}
}

func NewNotFoundError(resource string, id int32) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s %d not found", resource, id)}
}

func NewConflictError(msg string) *Error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func NewStorageError(err error) *Error {
	return &Error{Kind: ErrStorage, Message: "storage failure", Err: err}
}

// KindOf extracts the error kind, defaulting unknown errors to storage
// so nothing leaks to callers untyped.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrStorage
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
