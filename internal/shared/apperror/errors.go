package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure. The set is closed: anything a
// service raises deliberately carries one of these, everything else is
// treated as an internal error by the transport layer.
type Kind string

const (
	KindInvalidInput    Kind = "INVALID_INPUT"
	KindNotFound        Kind = "RESOURCE_NOT_FOUND"
	KindAlreadyExists   Kind = "RESOURCE_ALREADY_EXISTS"
	KindExternalService Kind = "EXTERNAL_SERVICE_ERROR"
	KindInternal        Kind = "INTERNAL_ERROR"
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes two classified errors match on kind, so sentinel-style
// comparisons like errors.Is(err, apperror.NotFound("")) work in tests.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func InvalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func AlreadyExists(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

func ExternalService(msg string, err error) *Error {
	return &Error{Kind: KindExternalService, Message: msg, Err: err}
}

// KindOf extracts the kind from an error chain. Unclassified errors
// (storage failures, constraint races) report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
