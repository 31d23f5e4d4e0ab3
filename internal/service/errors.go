// Package service contains the business logic of the carbsmart service.
package service

import "errors"

var (
	// ErrInvalidInput is matched by every *InputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPanNotFound is returned when a pan id does not resolve.
	ErrPanNotFound = errors.New("pan not found")
	// ErrPanExists is returned when the name and capacity label pair is taken.
	ErrPanExists = errors.New("pan name and capacity already exists")
	// ErrStoreUnavailable is returned when the pan store cannot be reached.
	ErrStoreUnavailable = errors.New("pan store unavailable")
	// ErrLogStoreUnavailable is returned by log reads while the log store breaker is open.
	ErrLogStoreUnavailable = errors.New("log store unavailable")
	// ErrRepositoryNotConfigured is returned by pan operations when no store is wired.
	ErrRepositoryNotConfigured = errors.New("pan repository not configured")
)

// Invalid input reasons. The strings are user-facing.
const (
	ReasonNetWeightPositive   = "Net weight must be positive"
	ReasonTargetRangePositive = "Target range must be positive"
	ReasonTargetMinAboveMax   = "Target min must be <= target max"
	ReasonTotalNotAboveTare   = "Total weight must be greater than pan weight"
	ReasonTotalWeightPositive = "Total weight must be positive"
	ReasonTareWeightPositive  = "Pan weight must be positive"
	ReasonCarbsNegative       = "Total carbs must not be negative"
	ReasonTargetRangeTooSmall = "Target range too small for net weight"
)

// InputError describes a violated numeric precondition.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// Is makes errors.Is(err, ErrInvalidInput) hold for every InputError.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(reason string) error {
	return &InputError{Reason: reason}
}

// InputReason returns the reason of an invalid-input error, or "" when err
// is not one.
func InputReason(err error) string {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Reason
	}
	return ""
}
