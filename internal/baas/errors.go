package baas

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	TypeUserAlreadyExists   = "user_already_exists"
	TypeUserInvalidCreds    = "user_invalid_credentials"
	TypeUserUnauthorized    = "general_unauthorized_scope"
	TypeUserPasswordInvalid = "user_password_invalid"
	TypeUserNotFound        = "user_not_found"
	TypeDocumentNotFound    = "document_not_found"
	TypeFileNotFound        = "storage_file_not_found"
	TypeGeneralUnknown      = "general_unknown"
	TypeUnreachable         = "general_unreachable"
)

// Error is the error shape every driver reports, mirroring the backend's
// JSON error body.
type Error struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s (%d)", e.Message, e.Code)
	}
	return fmt.Sprintf("%s (%d %s)", e.Message, e.Code, e.Type)
}

func NewError(code int, typ, message string) *Error {
	return &Error{Code: code, Type: typ, Message: message}
}

// MessageOf returns the human-readable part of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == http.StatusUnauthorized
}
