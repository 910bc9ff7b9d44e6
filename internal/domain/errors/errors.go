package errors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrStorageFailure     = errors.New("storage failure")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Validation wraps ErrValidation with a machine-readable reason.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// Forbidden wraps ErrForbidden with a machine-readable reason.
func Forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

// InvalidTransition wraps ErrInvalidTransition with a machine-readable reason.
func InvalidTransition(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, reason)
}

// Storage marks an unexpected persistence error as a storage failure while
// keeping the original error chain intact.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrStorageFailure, err)
}
