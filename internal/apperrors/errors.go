package apperrors

import "fmt"

// Kind classifies an error by how handlers recover from it.
type Kind int

const (
	// KindValidation marks input that failed shape validation.
	KindValidation Kind = iota + 1
	// KindAuth marks bad credentials or a missing/insufficient session.
	KindAuth
	// KindDuplicate marks a violated uniqueness constraint.
	KindDuplicate
	// KindNotFound marks a lookup that matched nothing.
	KindNotFound
	// KindPersistence marks a failed database or session-store operation.
	KindPersistence
)

// Error is an application error carrying a kind and a user-presentable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password; callers must not let the two cases diverge in responses.
	ErrInvalidCredentials = &Error{Kind: KindAuth, Message: "invalid email or password"}
	// ErrUsernameTaken is returned when the username uniqueness constraint is violated.
	ErrUsernameTaken = &Error{Kind: KindDuplicate, Message: "username is already taken"}
	// ErrUserNotFound is returned when no user matches the provided id.
	ErrUserNotFound = &Error{Kind: KindNotFound, Message: "user not found"}
)

// Validation creates a validation error with the provided message.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Persistence wraps a failed storage operation.
func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf returns the kind of err, or 0 if err is not an application error.
func KindOf(err error) Kind {
	if appErr, ok := err.(*Error); ok {
		return appErr.Kind
	}
	return 0
}
