package service

import (
	"errors"
	"fmt"

	"reelstudio-backend/internal/repository"
)

// ValidationError reports input the operation refused to apply. Nothing
// was mutated; retrying with corrected input is safe.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError reports an illegal state transition (accepting an
// already-accepted proposal, paying a paid transaction). The operation
// was a no-op; retrying will not help.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func conflictf(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// PartialSideEffectError marks a proposal-acceptance sub-step failure.
// The surrounding database transaction rolls back, so no partial state
// persists, but the failed step is named for diagnosis.
type PartialSideEffectError struct {
	Step string
	Err  error
}

func (e *PartialSideEffectError) Error() string {
	return fmt.Sprintf("acceptance step %q failed: %v", e.Step, e.Err)
}

func (e *PartialSideEffectError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
