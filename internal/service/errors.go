package service

import (
	"database/sql"
	"errors"
	"fmt"

	"boardapi/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrQuotaExceeded      = errors.New("plan quota exceeded")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrProjectArchived    = errors.New("project is archived")
	ErrColumnNotEmpty     = errors.New("column is not empty")
	ErrWIPLimitReached    = errors.New("column WIP limit reached")
	ErrTaskArchived       = errors.New("task is archived")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrLastOwner          = errors.New("client must keep an active owner")
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// notFound translates a missing row into ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}

// duplicate translates a unique violation into ErrConflict.
func duplicate(err error, what string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%s already exists: %w", what, ErrConflict)
	}
	return err
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
