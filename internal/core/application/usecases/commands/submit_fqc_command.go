package commands

import (
	"errors"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrSubmitFQCCommandIsNotConstructed = errors.New(
		"SubmitFQCCommand must be created via NewSubmitFQCCommand constructor",
	)
	ErrConfirmedResultIsInvalid = errors.New("confirmed result must be Passed or Failed")
)

// ParameterReading carries one FQC parameter's sample readings and
// remarks as entered by the inspector.
type ParameterReading struct {
	// Name identifies the parameter on the FQC step.
	Name string
	// Samples are the raw readings, one per slot, in slot order.
	Samples []string
	// Remarks is the inspector's mandatory note for the parameter.
	Remarks string
}

// SubmitFQCCommand represents the confirmed submission of an FQC step:
// the inspector's sample readings plus the disposition the inspector saw
// and confirmed. The handler re-evaluates and rejects the submission if
// the confirmation no longer matches, closing the human-in-the-loop.
type SubmitFQCCommand struct { //nolint:recvcheck //using for validation
	jobCardID kernel.UUID
	stepIndex int
	processed int
	rejected  int
	readings  []ParameterReading
	confirmed jobcard.Disposition

	guard guard.ConstructorGuard
}

// NewSubmitFQCCommand creates a command to submit the FQC step at
// stepIndex with the given readings, quantity record, and confirmed
// disposition.
func NewSubmitFQCCommand(
	jobCardID kernel.UUID,
	stepIndex, processed, rejected int,
	readings []ParameterReading,
	confirmed jobcard.Disposition,
) (SubmitFQCCommand, error) {
	command := SubmitFQCCommand{
		readings: readings,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobCardID(jobCardID),
		command.setStepIndex(stepIndex),
		command.setProcessed(processed),
		command.setRejected(rejected),
		command.setConfirmed(confirmed),
	); err != nil {
		return SubmitFQCCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitFQCCommand) Validate() error {
	return c.guard.Validate(ErrSubmitFQCCommandIsNotConstructed)
}

// JobCardID returns the card holding the FQC step.
func (c SubmitFQCCommand) JobCardID() kernel.UUID {
	return c.jobCardID
}

// StepIndex returns the FQC step's position in the card's sequence.
func (c SubmitFQCCommand) StepIndex() int {
	return c.stepIndex
}

// Processed returns the quantity passing quality check.
func (c SubmitFQCCommand) Processed() int {
	return c.processed
}

// Rejected returns the quantity rejected at quality check.
func (c SubmitFQCCommand) Rejected() int {
	return c.rejected
}

// Readings returns the per-parameter sample readings and remarks.
func (c SubmitFQCCommand) Readings() []ParameterReading {
	out := make([]ParameterReading, len(c.readings))
	copy(out, c.readings)
	return out
}

// Confirmed returns the disposition the inspector confirmed.
func (c SubmitFQCCommand) Confirmed() jobcard.Disposition {
	return c.confirmed
}

func (c *SubmitFQCCommand) setJobCardID(jobCardID kernel.UUID) error {
	if err := jobCardID.Validate(); err != nil {
		return err
	}

	c.jobCardID = jobCardID
	return nil
}

func (c *SubmitFQCCommand) setStepIndex(stepIndex int) error {
	if stepIndex < 0 {
		return ErrStepIndexIsInvalid
	}

	c.stepIndex = stepIndex
	return nil
}

func (c *SubmitFQCCommand) setProcessed(processed int) error {
	if processed < 0 {
		return ErrProcessedQtyIsInvalid
	}

	c.processed = processed
	return nil
}

func (c *SubmitFQCCommand) setRejected(rejected int) error {
	if rejected < 0 {
		return ErrRejectedQtyIsInvalid
	}

	c.rejected = rejected
	return nil
}

func (c *SubmitFQCCommand) setConfirmed(confirmed jobcard.Disposition) error {
	if confirmed != jobcard.Passed && confirmed != jobcard.Failed {
		return ErrConfirmedResultIsInvalid
	}

	c.confirmed = confirmed
	return nil
}
