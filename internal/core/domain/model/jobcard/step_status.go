package jobcard

import (
	"fmt"

	"production/internal/pkg/errs"
)

// StepStatus represents the lifecycle state of a single step within a job card.
//
// State transitions:
//
//	StepPending ──> StepInProgress ──> StepCompleted
//
// There is no regression: StepCompleted is terminal and a completed step is
// immutable afterwards. StepSkipped marks a step recorded as not applicable
// to the batch; skipped steps are excluded from predecessor gating.
type StepStatus int

const (
	// UnknownStepStatus represents an invalid or undefined step status.
	UnknownStepStatus StepStatus = iota

	// StepPending is the initial status of every step cloned from a template.
	StepPending

	// StepInProgress indicates an assigned employee has started the step.
	StepInProgress

	// StepCompleted indicates the step has finished. This is a final state.
	StepCompleted

	// StepSkipped indicates the step was recorded as not applicable.
	// Skipped steps do not gate their successors.
	StepSkipped
)

func getStepStatusStrings() map[StepStatus]string {
	return map[StepStatus]string{
		UnknownStepStatus: "Unknown",
		StepPending:       "Pending",
		StepInProgress:    "InProgress",
		StepCompleted:     "Completed",
		StepSkipped:       "Skipped",
	}
}

func getValidStepStatusStrings() map[StepStatus]string {
	//nolint:exhaustive // UnknownStepStatus is intentionally excluded as it's invalid
	return map[StepStatus]string{
		StepPending:    "Pending",
		StepInProgress: "InProgress",
		StepCompleted:  "Completed",
		StepSkipped:    "Skipped",
	}
}

// Validate checks if the StepStatus value is valid.
func (s StepStatus) Validate() error {
	if _, ok := getValidStepStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"step status is invalid",
			fmt.Errorf("%d is not a valid step status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the step status.
// Implements fmt.Stringer and is safe on any StepStatus value.
func (s StepStatus) String() string {
	if str, ok := getStepStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s StepStatus) IsTerminal() bool {
	return s == StepCompleted || s == StepSkipped
}
