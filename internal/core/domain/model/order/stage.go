package order

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Stage represents the coarse production workflow state of an order.
//
// The pipeline runs New → Mapped → Assigned → Processing → MFGCompleted →
// FQC → Documentation → Packing → Dispatch → Completed. OnHold is an
// orthogonal side state reachable from any in-flight stage; resuming
// restores the stage that was held. Cancelled is an administrative
// terminal state.
//
// Manual stage changes may jump anywhere in the pipeline; only derivation
// from job card progress is monotonic (see services.StageCalculator).
type Stage int

const (
	// UnknownStage represents an invalid or undefined stage.
	UnknownStage Stage = iota

	// StageNew is the initial stage of a confirmed order.
	StageNew

	// StageMapped means batches have been planned into job cards.
	StageMapped

	// StageAssigned means employees have been assigned to steps.
	StageAssigned

	// StageProcessing means manufacturing steps are underway.
	StageProcessing

	// StageMFGCompleted means every manufacturing step has finished.
	StageMFGCompleted

	// StageFQC means final quality checking has started.
	StageFQC

	// StageDocumentation covers post-FQC paperwork.
	StageDocumentation

	// StagePacking means the order is being packed.
	StagePacking

	// StageDispatch means the order has left the floor.
	StageDispatch

	// StageCompleted is the terminal success stage.
	StageCompleted

	// StageOnHold is the orthogonal paused state.
	StageOnHold

	// StageCancelled is the administrative terminal failure stage.
	StageCancelled
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		UnknownStage:       "Unknown",
		StageNew:           "New",
		StageMapped:        "Mapped",
		StageAssigned:      "Assigned",
		StageProcessing:    "Processing",
		StageMFGCompleted:  "MFGCompleted",
		StageFQC:           "FQC",
		StageDocumentation: "Documentation",
		StagePacking:       "Packing",
		StageDispatch:      "Dispatch",
		StageCompleted:     "Completed",
		StageOnHold:        "OnHold",
		StageCancelled:     "Cancelled",
	}
}

// StageFromString parses a stage from its string representation.
func StageFromString(s string) (Stage, error) {
	for stage, str := range getStageStrings() {
		if stage != UnknownStage && strings.EqualFold(str, s) {
			return stage, nil
		}
	}
	return UnknownStage, errs.NewValueIsInvalidErrorWithCause(
		"stage is invalid",
		fmt.Errorf("%q is not a valid stage", s),
	)
}

// Validate checks if the Stage value is valid.
func (s Stage) Validate() error {
	if s <= UnknownStage || s > StageCancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%d is not a valid stage", s),
		)
	}
	return nil
}

// String returns the human-readable name of the stage.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the stage ends the order's lifecycle.
func (s Stage) IsTerminal() bool {
	return s == StageCompleted || s == StageCancelled
}

// IsPipeline reports whether the stage is part of the forward pipeline,
// as opposed to the OnHold and Cancelled side states.
func (s Stage) IsPipeline() bool {
	return s >= StageNew && s <= StageCompleted
}

// Before reports whether the stage precedes other in the pipeline.
// Side states have no pipeline position and are never ordered.
func (s Stage) Before(other Stage) bool {
	if !s.IsPipeline() || !other.IsPipeline() {
		return false
	}
	return s < other
}

// CanHold reports whether an order in this stage may be put on hold:
// any in-flight pipeline stage qualifies, terminal and already-held
// orders do not.
func (s Stage) CanHold() bool {
	return s.IsPipeline() && !s.IsTerminal()
}
