package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrAcceptOpenJobCommandIsNotConstructed = errors.New(
	"AcceptOpenJobCommand must be created via NewAcceptOpenJobCommand constructor",
)

// AcceptOpenJobCommand represents an employee claiming an open job step.
// Claiming is first-writer-wins: exactly one of two concurrent claimers
// succeeds, the other receives AlreadyClaimed.
type AcceptOpenJobCommand struct { //nolint:recvcheck //using for validation
	jobCardID  kernel.UUID
	stepIndex  int
	employeeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOpenJobCommand creates a command to claim the open job step at
// stepIndex for the given employee.
func NewAcceptOpenJobCommand(jobCardID kernel.UUID, stepIndex int, employeeID kernel.UUID) (AcceptOpenJobCommand, error) {
	command := AcceptOpenJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobCardID(jobCardID),
		command.setStepIndex(stepIndex),
		command.setEmployeeID(employeeID),
	); err != nil {
		return AcceptOpenJobCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOpenJobCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOpenJobCommandIsNotConstructed)
}

// JobCardID returns the card holding the open job step.
func (c AcceptOpenJobCommand) JobCardID() kernel.UUID {
	return c.jobCardID
}

// StepIndex returns the step's position in the card's sequence.
func (c AcceptOpenJobCommand) StepIndex() int {
	return c.stepIndex
}

// EmployeeID returns the claiming employee.
func (c AcceptOpenJobCommand) EmployeeID() kernel.UUID {
	return c.employeeID
}

func (c *AcceptOpenJobCommand) setJobCardID(jobCardID kernel.UUID) error {
	if err := jobCardID.Validate(); err != nil {
		return err
	}

	c.jobCardID = jobCardID
	return nil
}

func (c *AcceptOpenJobCommand) setStepIndex(stepIndex int) error {
	if stepIndex < 0 {
		return ErrStepIndexIsInvalid
	}

	c.stepIndex = stepIndex
	return nil
}

func (c *AcceptOpenJobCommand) setEmployeeID(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}

	c.employeeID = employeeID
	return nil
}
