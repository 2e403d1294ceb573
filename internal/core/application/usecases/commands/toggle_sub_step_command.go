package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrToggleSubStepCommandIsNotConstructed = errors.New(
		"ToggleSubStepCommand must be created via NewToggleSubStepCommand constructor",
	)
	ErrSubStepIndexIsInvalid = errors.New("sub-step index must not be negative")
)

// ToggleSubStepCommand represents a request to flip a checklist item on a
// job card step. The flip is idempotent-safe: toggling twice restores the
// original state.
type ToggleSubStepCommand struct { //nolint:recvcheck //using for validation
	jobCardID    kernel.UUID
	stepIndex    int
	subStepIndex int

	guard guard.ConstructorGuard
}

// NewToggleSubStepCommand creates a command to toggle the checklist item
// at subStepIndex on the step at stepIndex.
func NewToggleSubStepCommand(jobCardID kernel.UUID, stepIndex, subStepIndex int) (ToggleSubStepCommand, error) {
	command := ToggleSubStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobCardID(jobCardID),
		command.setStepIndex(stepIndex),
		command.setSubStepIndex(subStepIndex),
	); err != nil {
		return ToggleSubStepCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ToggleSubStepCommand) Validate() error {
	return c.guard.Validate(ErrToggleSubStepCommandIsNotConstructed)
}

// JobCardID returns the card holding the step.
func (c ToggleSubStepCommand) JobCardID() kernel.UUID {
	return c.jobCardID
}

// StepIndex returns the step's position in the card's sequence.
func (c ToggleSubStepCommand) StepIndex() int {
	return c.stepIndex
}

// SubStepIndex returns the checklist item's position within the step.
func (c ToggleSubStepCommand) SubStepIndex() int {
	return c.subStepIndex
}

func (c *ToggleSubStepCommand) setJobCardID(jobCardID kernel.UUID) error {
	if err := jobCardID.Validate(); err != nil {
		return err
	}

	c.jobCardID = jobCardID
	return nil
}

func (c *ToggleSubStepCommand) setStepIndex(stepIndex int) error {
	if stepIndex < 0 {
		return ErrStepIndexIsInvalid
	}

	c.stepIndex = stepIndex
	return nil
}

func (c *ToggleSubStepCommand) setSubStepIndex(subStepIndex int) error {
	if subStepIndex < 0 {
		return ErrSubStepIndexIsInvalid
	}

	c.subStepIndex = subStepIndex
	return nil
}
