package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Allocation errors
	ErrMsgValidation = "invalid allocation"
	ErrMsgNotReady   = "claim not ready"

	// Submission errors
	ErrMsgSubmission    = "claim submission failed"
	ErrMsgClaimInFlight = "a claim is already being submitted"

	// Session errors
	ErrMsgNoActiveSession = "no active claim session"
	ErrMsgRewardNotFound  = "reward not found"

	// User errors
	ErrMsgDiscordNotLinked = "discord account not linked"
	ErrMsgUserNotFound     = "user not found"

	// Draft errors
	ErrMsgDraftNotFound = "draft not found"
	ErrMsgCorruptDraft  = "corrupt claim draft"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrValidation = errors.New(ErrMsgValidation)
	ErrNotReady   = errors.New(ErrMsgNotReady)

	ErrSubmission    = errors.New(ErrMsgSubmission)
	ErrClaimInFlight = errors.New(ErrMsgClaimInFlight)

	ErrNoActiveSession = errors.New(ErrMsgNoActiveSession)
	ErrRewardNotFound  = errors.New(ErrMsgRewardNotFound)

	ErrDiscordNotLinked = errors.New(ErrMsgDiscordNotLinked)
	ErrUserNotFound     = errors.New(ErrMsgUserNotFound)

	ErrDraftNotFound = errors.New(ErrMsgDraftNotFound)
	ErrCorruptDraft  = errors.New(ErrMsgCorruptDraft)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// ValidationError is returned when an allocation or assignment would break
// a precondition. The session is left untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMsgValidation, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotReadyError carries the first blocking reason reported by readiness checks.
type NotReadyError struct {
	Reason string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMsgNotReady, e.Reason)
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}

// SubmissionError wraps a failed claim call. StatusCode is zero for
// transport failures.
type SubmissionError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s (status %d): %s", ErrMsgSubmission, e.StatusCode, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", ErrMsgSubmission, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", ErrMsgSubmission, e.Err)
	default:
		return ErrMsgSubmission
	}
}

func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmission
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
