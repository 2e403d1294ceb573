package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrCompleteStepCommandIsNotConstructed = errors.New(
		"CompleteStepCommand must be created via NewCompleteStepCommand constructor",
	)
	ErrProcessedQtyIsInvalid = errors.New("processed quantity must not be negative")
	ErrRejectedQtyIsInvalid  = errors.New("rejected quantity must not be negative")
)

// CompleteStepCommand represents a request by an employee to finish a job
// card step with its quantity record and remarks.
type CompleteStepCommand struct { //nolint:recvcheck //using for validation
	jobCardID  kernel.UUID
	stepIndex  int
	processed  int
	rejected   int
	remarks    string
	employeeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteStepCommand creates a command to complete the step at
// stepIndex with the given processed/rejected counts.
func NewCompleteStepCommand(
	jobCardID kernel.UUID,
	stepIndex, processed, rejected int,
	remarks string,
	employeeID kernel.UUID,
) (CompleteStepCommand, error) {
	command := CompleteStepCommand{
		remarks: remarks,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobCardID(jobCardID),
		command.setStepIndex(stepIndex),
		command.setProcessed(processed),
		command.setRejected(rejected),
		command.setEmployeeID(employeeID),
	); err != nil {
		return CompleteStepCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStepCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStepCommandIsNotConstructed)
}

// JobCardID returns the card holding the step.
func (c CompleteStepCommand) JobCardID() kernel.UUID {
	return c.jobCardID
}

// StepIndex returns the step's position in the card's sequence.
func (c CompleteStepCommand) StepIndex() int {
	return c.stepIndex
}

// Processed returns the quantity that passed through the step.
func (c CompleteStepCommand) Processed() int {
	return c.processed
}

// Rejected returns the quantity rejected at the step.
func (c CompleteStepCommand) Rejected() int {
	return c.rejected
}

// Remarks returns the operator's remarks.
func (c CompleteStepCommand) Remarks() string {
	return c.remarks
}

// EmployeeID returns the employee completing the step.
func (c CompleteStepCommand) EmployeeID() kernel.UUID {
	return c.employeeID
}

func (c *CompleteStepCommand) setJobCardID(jobCardID kernel.UUID) error {
	if err := jobCardID.Validate(); err != nil {
		return err
	}

	c.jobCardID = jobCardID
	return nil
}

func (c *CompleteStepCommand) setStepIndex(stepIndex int) error {
	if stepIndex < 0 {
		return ErrStepIndexIsInvalid
	}

	c.stepIndex = stepIndex
	return nil
}

func (c *CompleteStepCommand) setProcessed(processed int) error {
	if processed < 0 {
		return ErrProcessedQtyIsInvalid
	}

	c.processed = processed
	return nil
}

func (c *CompleteStepCommand) setRejected(rejected int) error {
	if rejected < 0 {
		return ErrRejectedQtyIsInvalid
	}

	c.rejected = rejected
	return nil
}

func (c *CompleteStepCommand) setEmployeeID(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}

	c.employeeID = employeeID
	return nil
}
