package engine

import (
	"errors"
	"fmt"
)

// Kind classifies gateway failures so screens can decide where the message
// belongs: connection errors stick to the settings screen, query errors
// leave the task list untouched, the rest surface inline.
type Kind string

const (
	KindConnection Kind = "connection"
	KindQuery      Kind = "query"
	KindNotFound   Kind = "not-found"
	KindValidation Kind = "validation"
	KindTransient  Kind = "transient"
)

// Error is the uniform failure type every Gateway call reports. Message is
// human-readable and shown to the user verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds a classified gateway error.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the classification from err, defaulting to transient for
// anything that is not an *Error.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindTransient
}

// IsNotFound reports whether err is a not-found gateway error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
