package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrAssignStepCommandIsNotConstructed = errors.New(
	"AssignStepCommand must be created via NewAssignStepCommand constructor",
)

// AssignStepCommand adds an employee to a step's assignment set. A step
// can carry several assignees; any one of them may then work the step.
type AssignStepCommand struct { //nolint:recvcheck //using for validation
	jobCardID  kernel.UUID
	stepIndex  int
	employeeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignStepCommand creates a command to assign an employee to a step.
func NewAssignStepCommand(jobCardID kernel.UUID, stepIndex int, employeeID kernel.UUID) (AssignStepCommand, error) {
	command := AssignStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobCardID(jobCardID),
		command.setStepIndex(stepIndex),
		command.setEmployeeID(employeeID),
	); err != nil {
		return AssignStepCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignStepCommand) Validate() error {
	return c.guard.Validate(ErrAssignStepCommandIsNotConstructed)
}

// JobCardID returns the card holding the step.
func (c AssignStepCommand) JobCardID() kernel.UUID {
	return c.jobCardID
}

// StepIndex returns the position of the step on the card.
func (c AssignStepCommand) StepIndex() int {
	return c.stepIndex
}

// EmployeeID returns the employee being assigned.
func (c AssignStepCommand) EmployeeID() kernel.UUID {
	return c.employeeID
}

func (c *AssignStepCommand) setJobCardID(jobCardID kernel.UUID) error {
	if err := jobCardID.Validate(); err != nil {
		return err
	}

	c.jobCardID = jobCardID
	return nil
}

func (c *AssignStepCommand) setStepIndex(stepIndex int) error {
	if stepIndex < 0 {
		return ErrStepIndexIsInvalid
	}

	c.stepIndex = stepIndex
	return nil
}

func (c *AssignStepCommand) setEmployeeID(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}

	c.employeeID = employeeID
	return nil
}
