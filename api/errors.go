// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-shepherd.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrTopology          = errors.New("topology unavailable")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrNotSupported      = errors.New("operation not supported")
	ErrNotFound          = errors.New("resource not found")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeResourceExhausted
	ErrCodeNotSupported
	ErrCodeNotFound
	// ErrCodeEnvironment marks failures of the host topology source.
	// Callers recover from these by falling back to uniform placement.
	ErrCodeEnvironment
	ErrCodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeResourceExhausted:
		return "resource_exhausted"
	case ErrCodeNotSupported:
		return "not_supported"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeEnvironment:
		return "environment"
	default:
		return "internal"
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// EnvironmentError wraps a topology source failure. The result matches
// ErrTopology under errors.Is, in addition to cause.
func EnvironmentError(message string, cause error) *Error {
	e := NewError(ErrCodeEnvironment, message)
	if cause == nil {
		e.Cause = ErrTopology
	} else {
		e.Cause = errors.Join(ErrTopology, cause)
	}
	return e
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// IsEnvironment reports whether err is a topology source failure.
func IsEnvironment(err error) bool {
	var ae *Error
	if errors.As(err, &ae) && ae.Code == ErrCodeEnvironment {
		return true
	}
	return errors.Is(err, ErrTopology)
}
