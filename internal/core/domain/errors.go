package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileExists      = errors.New("profile already exists")
	ErrPostNotFound       = errors.New("post not found")
	ErrNotOwner           = errors.New("user authorization failed")

	// ErrInvalidID is returned by repositories when an id does not have the
	// shape of a stored identifier. Services translate it to the NotFound
	// error of the resource being looked up.
	ErrInvalidID = errors.New("malformed id")
)

// AuthErrorKind classifies an authentication failure.
type AuthErrorKind string

const (
	AuthMissing          AuthErrorKind = "missing"
	AuthInvalid          AuthErrorKind = "invalid"
	AuthInvalidSignature AuthErrorKind = "invalid_signature"
	AuthExpired          AuthErrorKind = "expired"
	AuthMalformed        AuthErrorKind = "malformed"
)

// AuthError is returned by token verification and by the authorization gate.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "auth: " + string(e.Kind)
	}
	return "auth: " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthKind reports whether err is an AuthError of the given kind.
func IsAuthKind(err error, kind AuthErrorKind) bool {
	var ae *AuthError
	return errors.As(err, &ae) && ae.Kind == kind
}

// FieldError is a single failed input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed validation for a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// CascadeError reports the step at which an account deletion stopped. Steps
// that completed before it are not rolled back.
type CascadeError struct {
	Step string
	Err  error
}

func (e *CascadeError) Error() string {
	return "cascade delete: " + e.Step + ": " + e.Err.Error()
}

func (e *CascadeError) Unwrap() error { return e.Err }
