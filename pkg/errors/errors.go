// Package errors provides structured error types for kinview.
//
// Codes are machine-readable and shared by the CLI and the HTTP API:
//   - DATA_INCONSISTENCY: the dataset references a person that does not exist
//   - NOT_FOUND: a requested person is absent
//   - UNREACHABLE: no relationship path joins two people
//   - INVALID_*: input validation failures
//   - PREMATURE_DIMENSION, STALE_LAYOUT: layout call-ordering mistakes
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "no person with id %s", id)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidInput, cause, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"

	// Dataset errors
	ErrCodeDataInconsistency Code = "DATA_INCONSISTENCY"
	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodeUnreachable       Code = "UNREACHABLE"

	// Layout call-ordering errors
	ErrCodePrematureDimension Code = "PREMATURE_DIMENSION"
	ErrCodeStaleLayout        Code = "STALE_LAYOUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// class describes how a code is presented.
type class struct {
	status int  // HTTP status
	fatal  bool // stays on screen in the navigator
}

var classes = map[Code]class{
	ErrCodeInvalidInput:       {status: http.StatusBadRequest},
	ErrCodeInvalidFormat:      {status: http.StatusBadRequest},
	ErrCodeInvalidStyle:       {status: http.StatusBadRequest, fatal: true},
	ErrCodeNotFound:           {status: http.StatusNotFound},
	ErrCodeUnreachable:        {status: http.StatusUnprocessableEntity, fatal: true},
	ErrCodeDataInconsistency:  {status: http.StatusUnprocessableEntity},
	ErrCodePrematureDimension: {status: http.StatusInternalServerError},
	ErrCodeStaleLayout:        {status: http.StatusInternalServerError},
	ErrCodeInternal:           {status: http.StatusInternalServerError, fatal: true},
}

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether GetCode(err) is code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns the message without the code prefix. Errors that are
// not an *Error are returned as is.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether a presenter should keep the error on screen rather
// than show it as a dismissable notice. Unreachable targets leave nothing to
// draw; missing data only spoils the current focus.
func IsFatal(err error) bool {
	return classes[GetCode(err)].fatal
}

// HTTPStatus maps an error to the status code the API responds with. Plain
// errors are 500.
func HTTPStatus(err error) int {
	if c, ok := classes[GetCode(err)]; ok {
		return c.status
	}
	return http.StatusInternalServerError
}
