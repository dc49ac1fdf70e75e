package apperrors

import "errors"

// Error kinds. Entity errors wrap exactly one of these so callers can
// classify with errors.Is regardless of the concrete cause.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
)

func kind(k error, msg string) error {
	return &entityError{kind: k, msg: msg}
}

type entityError struct {
	kind error
	msg  string
}

func (e *entityError) Error() string { return e.msg }

func (e *entityError) Unwrap() error { return e.kind }

// Validation builds an ad-hoc validation error carrying msg.
func Validation(msg string) error {
	return kind(ErrValidation, msg)
}

// Message returns the text of the first entity error in err's chain, or ""
// when there is none.
func Message(err error) string {
	var e *entityError
	if errors.As(err, &e) {
		return e.msg
	}
	return ""
}
