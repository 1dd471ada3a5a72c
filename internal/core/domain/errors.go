package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the presentation layer.
type Kind string

const (
	KindValidation Kind = "validation"
	KindCredential Kind = "credential"
	KindPermission Kind = "permission"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindRemote     Kind = "remote"
)

// Error is the single error shape returned by every service operation.
// Message is safe to show to the user; Err carries the underlying cause.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "":
		return e.Op + ": " + e.Message
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinel errors by kind and message so that a wrapped copy
// produced by E still satisfies errors.Is against the sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// E builds an *Error. A nil cause is allowed.
func E(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: cause}
}

// Wrap attaches op to err, keeping its kind and message when err is already
// an *Error. Any other error becomes a remote error with the given message.
func Wrap(op, message string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return &Error{Kind: de.Kind, Op: op, Message: de.Message, Err: err}
	}
	return &Error{Kind: KindRemote, Op: op, Message: message, Err: err}
}

// KindOf reports the kind of err. Errors not produced by this package are remote.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindRemote
}

// MessageOf returns the user-facing message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}

var (
	ErrEmptyFields        = &Error{Kind: KindValidation, Message: "Fields shouldn't be left empty!"}
	ErrPasswordMismatch   = &Error{Kind: KindValidation, Message: "Passwords must match!"}
	ErrInvalidID          = &Error{Kind: KindValidation, Message: "Invalid ID"}
	ErrInvalidProjectID   = &Error{Kind: KindValidation, Message: "Invalid project ID"}
	ErrInvalidCredentials = &Error{Kind: KindCredential, Message: "invalid credentials"}
	ErrUnauthenticated    = &Error{Kind: KindCredential, Message: "authentication required"}
	ErrForbidden          = &Error{Kind: KindPermission, Message: "unauthorized"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrClientNotFound     = &Error{Kind: KindNotFound, Message: "client not found"}
	ErrMemberNotFound     = &Error{Kind: KindNotFound, Message: "member not found"}
	ErrProjectNotFound    = &Error{Kind: KindNotFound, Message: "project not found"}
	ErrSessionNotFound    = &Error{Kind: KindCredential, Message: "session not found"}
	ErrObjectNotFound     = &Error{Kind: KindNotFound, Message: "file not found"}
	ErrUserExists         = &Error{Kind: KindConflict, Message: "email already in use"}
)

// ValidationError lists the required-field messages of a rejected record.
func ValidationError(op string, messages []string) *Error {
	msg := "invalid input"
	if len(messages) > 0 {
		msg = messages[0]
		for _, m := range messages[1:] {
			msg += "; " + m
		}
	}
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}
