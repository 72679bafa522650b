package game

import "fmt"

// ErrorKind classifies engine failures.
type ErrorKind string

const (
	KindGameOver          ErrorKind = "GAME_OVER"
	KindInvalidPhase      ErrorKind = "INVALID_PHASE"
	KindInvalidAction     ErrorKind = "INVALID_ACTION"
	KindResourceExhausted ErrorKind = "RESOURCE_EXHAUSTED"
	KindDeserialization   ErrorKind = "DESERIALIZATION"
)

// Error is the engine error type. A failed call never changes the state it was given.
type Error struct {
	Kind    ErrorKind // Machine-readable kind
	Message string    // Precise cause, safe to show to a player
	Cause   error     // Wrapped underlying error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

var (
	ErrGameOver          = &Error{Kind: KindGameOver, Message: "game is over - no moves allowed"}
	ErrInvalidPhase      = &Error{Kind: KindInvalidPhase, Message: "invalid phase"}
	ErrInvalidAction     = &Error{Kind: KindInvalidAction, Message: "invalid action"}
	ErrResourceExhausted = &Error{Kind: KindResourceExhausted, Message: "resource exhausted"}
	ErrDeserialization   = &Error{Kind: KindDeserialization, Message: "cannot decode state"}
)

// NewError creates an error of the given kind.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an error of the given kind around a cause.
func WrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func invalidAction(format string, args ...any) *Error {
	return NewError(KindInvalidAction, format, args...)
}

func invalidPhase(format string, args ...any) *Error {
	return NewError(KindInvalidPhase, format, args...)
}

func exhausted(format string, args ...any) *Error {
	return NewError(KindResourceExhausted, format, args...)
}
