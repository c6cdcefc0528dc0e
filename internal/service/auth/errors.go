package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUsernameTaken reports a registration against an existing username.
	ErrUsernameTaken = errors.New("auth: username already exists")
	// ErrUserNotFound reports a login for an unknown username.
	ErrUserNotFound = errors.New("auth: user not found")
	// ErrInvalidCredentials reports a password mismatch on login.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrProvisioning reports a failed user+account creation; the transaction
	// guarantees no partial state was left behind.
	ErrProvisioning = errors.New("auth: provisioning failed")
	// ErrUpdate reports a failed profile mutation.
	ErrUpdate = errors.New("auth: profile update failed")
)

// FieldError names a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field violation found in a request, not just
// the first one.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "auth: validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
