package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrRecordOutwardReturnCommandIsNotConstructed = errors.New(
	"RecordOutwardReturnCommand must be created via NewRecordOutwardReturnCommand constructor",
)

// RecordOutwardReturnCommand marks an outward step's batch as returned
// from the vendor. An outward step cannot complete before its return is
// recorded.
type RecordOutwardReturnCommand struct { //nolint:recvcheck //using for validation
	jobCardID  kernel.UUID
	stepIndex  int
	returnDate time.Time

	guard guard.ConstructorGuard
}

// NewRecordOutwardReturnCommand creates a command to record the return.
func NewRecordOutwardReturnCommand(
	jobCardID kernel.UUID,
	stepIndex int,
	returnDate time.Time,
) (RecordOutwardReturnCommand, error) {
	command := RecordOutwardReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobCardID(jobCardID),
		command.setStepIndex(stepIndex),
		command.setReturnDate(returnDate),
	); err != nil {
		return RecordOutwardReturnCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordOutwardReturnCommand) Validate() error {
	return c.guard.Validate(ErrRecordOutwardReturnCommandIsNotConstructed)
}

// JobCardID returns the card holding the outward step.
func (c RecordOutwardReturnCommand) JobCardID() kernel.UUID {
	return c.jobCardID
}

// StepIndex returns the position of the outward step.
func (c RecordOutwardReturnCommand) StepIndex() int {
	return c.stepIndex
}

// ReturnDate returns when the batch came back.
func (c RecordOutwardReturnCommand) ReturnDate() time.Time {
	return c.returnDate
}

func (c *RecordOutwardReturnCommand) setJobCardID(jobCardID kernel.UUID) error {
	if err := jobCardID.Validate(); err != nil {
		return err
	}

	c.jobCardID = jobCardID
	return nil
}

func (c *RecordOutwardReturnCommand) setStepIndex(stepIndex int) error {
	if stepIndex < 0 {
		return ErrStepIndexIsInvalid
	}

	c.stepIndex = stepIndex
	return nil
}

func (c *RecordOutwardReturnCommand) setReturnDate(returnDate time.Time) error {
	if returnDate.IsZero() {
		return errs.NewValueIsRequiredError("returnDate")
	}

	c.returnDate = returnDate
	return nil
}
