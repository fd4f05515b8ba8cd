// Package apperr defines the three error kinds the HTTP layer maps to
// status codes: not-found (404), validation (400) and conflict (409).
package apperr

import (
	"errors"
	"fmt"
)

type kind int

const (
	kindNotFound kind = iota
	kindValidation
	kindConflict
)

type appError struct {
	kind kind
	msg  string
}

func (e *appError) Error() string { return e.msg }

// NotFound reports an unknown id reference.
func NotFound(format string, args ...interface{}) error {
	return &appError{kind: kindNotFound, msg: fmt.Sprintf(format, args...)}
}

// Validation reports malformed input, an authorization violation or a
// business-rule violation.
func Validation(format string, args ...interface{}) error {
	return &appError{kind: kindValidation, msg: fmt.Sprintf(format, args...)}
}

// Conflict reports a duplicate unique field.
func Conflict(format string, args ...interface{}) error {
	return &appError{kind: kindConflict, msg: fmt.Sprintf(format, args...)}
}

func is(err error, k kind) bool {
	var ae *appError
	return errors.As(err, &ae) && ae.kind == k
}

func IsNotFound(err error) bool   { return is(err, kindNotFound) }
func IsValidation(err error) bool { return is(err, kindValidation) }
func IsConflict(err error) bool   { return is(err, kindConflict) }
