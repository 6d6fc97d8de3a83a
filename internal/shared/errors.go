package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates a missing or unverifiable token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates a valid principal with insufficient role or wrong tenant.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a missing or malformed request field.
	ErrValidation = errors.New("invalid request")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicate indicates a uniqueness conflict.
	ErrDuplicate = errors.New("duplicate entry")
)

// Errorf builds an error whose message is safe to surface to clients while
// still matching kind with errors.Is.
func Errorf(kind error, format string, args ...any) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
