package jobcard

import (
	"fmt"

	"production/internal/pkg/errs"
)

// StepType classifies a step's execution semantics.
//
// Normal steps consume and produce quantities in the forward-flow pipeline.
// FQC steps sample the batch and record a pass/fail disposition; they never
// act as a quantity source for later steps. Outward steps are outsourced to
// an external vendor and invert the received/processed semantics
// (sent-to-vendor / received-back).
type StepType int

const (
	// UnknownStepType represents an invalid or undefined step type.
	UnknownStepType StepType = iota

	// StepNormal is an in-house manufacturing step.
	StepNormal

	// StepFQC is a Final Quality Check sampling step.
	StepFQC

	// StepOutward is an outsourced step executed by an external vendor.
	StepOutward
)

func getStepTypeStrings() map[StepType]string {
	return map[StepType]string{
		UnknownStepType: "Unknown",
		StepNormal:      "Normal",
		StepFQC:         "FQC",
		StepOutward:     "Outward",
	}
}

// StepTypeFromString parses a step type from its string representation.
// Returns an error for unrecognized values.
func StepTypeFromString(s string) (StepType, error) {
	for t, str := range getStepTypeStrings() {
		if t != UnknownStepType && str == s {
			return t, nil
		}
	}
	return UnknownStepType, errs.NewValueIsInvalidErrorWithCause(
		"step type is invalid",
		fmt.Errorf("%q is not a valid step type", s),
	)
}

// Validate checks if the StepType value is valid.
func (t StepType) Validate() error {
	if t != StepNormal && t != StepFQC && t != StepOutward {
		return errs.NewValueIsInvalidErrorWithCause(
			"step type is invalid",
			fmt.Errorf("%d is not a valid step type", t),
		)
	}
	return nil
}

// String returns the human-readable name of the step type.
func (t StepType) String() string {
	if str, ok := getStepTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
