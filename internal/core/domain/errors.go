package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for expected conditions. Policy and service functions
// return these instead of panicking or throwing; the HTTP layer maps each
// to exactly one status family.
var (
	ErrUserNotFound = errors.New("user not found")

	// ErrCredentialRequired: admin creation was attempted without presenting
	// any credential at all.
	ErrCredentialRequired = errors.New("credential required")

	// ErrInvalidCredential: a credential was presented but is expired or
	// otherwise unusable.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrInsufficientPermission: the caller is known but lacks the role the
	// operation demands.
	ErrInsufficientPermission = errors.New("insufficient permission")

	ErrInvalidLogin = errors.New("invalid username or password")
)

// ConflictError reports a uniqueness violation at creation time. Field names
// the offending attribute: "username", "email", or "studentId".
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// IncompleteError reports a creation payload missing fields required for its
// declared role.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}
