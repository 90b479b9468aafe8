package service

import (
	"errors"
	"fmt"

	"github.com/BloggingApp/blog-client/internal/baas"
)

var (
	ErrAuthentication    = errors.New("authentication failed")
	ErrAccountCreation   = errors.New("account creation failed")
	ErrSignInAfterSignup = errors.New("account created but sign-in failed")
	ErrLogout            = errors.New("logout failed")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateSlug     = errors.New("slug already in use")
	ErrForbidden         = errors.New("forbidden")
	ErrCreate            = errors.New("create failed")
	ErrUpdate            = errors.New("update failed")
	ErrDelete            = errors.New("delete failed")
	ErrUpload            = errors.New("upload failed")
	ErrFetch             = errors.New("fetch failed")
)

// Error is what every service operation returns on failure. errors.Is matches
// both its Kind and, when present, the backend error that caused it.
type Error struct {
	Kind    error
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.cause}
}

// wrap converts a backend failure of op into a kinded error, e.g.
// "failed to create post: Document with the requested ID already exists."
func wrap(kind error, op string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf("failed to %s: %s", op, baas.MessageOf(cause)),
		cause:   cause,
	}
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
