package services

import (
	"errors"
	"fmt"
)

// Kind discriminates operation failures so the handler layer can map each one
// to an HTTP status without inspecting message text.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindInvalidState
	KindQuotaExceeded
	KindConflict
	KindValidation
)

// Error is the typed failure returned by every service operation. Detail
// carries actionable context for the client (existing bid id, used/limit
// counts) alongside the message.
type Error struct {
	Kind    Kind
	Message string
	Detail  map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func quotaExceeded(message string) *Error {
	return &Error{Kind: KindQuotaExceeded, Message: message}
}

func conflict(message string, detail map[string]interface{}) *Error {
	return &Error{Kind: KindConflict, Message: message, Detail: detail}
}

func validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts the typed error, if any, from an operation failure.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsKind reports whether err is a typed error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
