package jobcard

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Status represents the lifecycle state of a job card.
//
// State transitions:
//
//	Created ──> InProgress ──> Completed
//
// A card moves to InProgress when its first step is started and to
// Completed when every step has finished. Both transitions are driven by
// step execution; callers never set the card status directly.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Created is the initial status assigned by the batch planner.
	Created

	// InProgress indicates at least one step has been started.
	InProgress

	// Completed indicates every step has finished. This is a final state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Created:       "Created",
		InProgress:    "InProgress",
		Completed:     "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "Created",
		InProgress: "InProgress",
		Completed:  "Completed",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Created, InProgress, Completed.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
