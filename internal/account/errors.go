package account

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Code classifies failures crossing the service boundary.
type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeValidation   Code = "VALIDATION"
	CodeTransient    Code = "TRANSIENT"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeBusy         Code = "BUSY"
	CodeInternal     Code = "INTERNAL"
)

// Error is a classified account error. Fields is only populated for
// validation failures and maps field names to the violated rule.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, e.fieldSummary())
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error carrying the same code and message, so sentinel
// comparisons keep working after WithField or wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func (e *Error) fieldSummary() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return strings.Join(parts, ", ")
}

// NewError builds a classified error.
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError classifies an existing error, attaching a stack trace.
func WrapError(code Code, message string, err error) *Error {
	if err != nil {
		err = errors.WithStack(err)
	}
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the classification of err, or CodeInternal for anything
// unclassified.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var aErr *Error
	if stderrors.As(err, &aErr) {
		return aErr.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given classification.
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// FieldErrors returns the per-field messages of a validation error.
func FieldErrors(err error) map[string]string {
	var aErr *Error
	if stderrors.As(err, &aErr) && aErr.Code == CodeValidation {
		return aErr.Fields
	}
	return nil
}

var (
	ErrUserNotFound    = NewError(CodeNotFound, "user not found")
	ErrAddressNotFound = NewError(CodeNotFound, "address not found")
	ErrInvoiceNotFound = NewError(CodeNotFound, "invoice not found")
	ErrOrderNotFound   = NewError(CodeNotFound, "order not found")
	ErrUnauthorized    = NewError(CodeUnauthorized, "unauthorized")
	ErrBusy            = NewError(CodeBusy, "another change is already in progress")
	ErrNotEditing      = NewError(CodeValidation, "personal details are not being edited")
	ErrUnknownField    = NewError(CodeValidation, "unknown personal details field")
)
