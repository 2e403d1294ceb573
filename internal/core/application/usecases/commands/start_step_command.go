package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrStartStepCommandIsNotConstructed = errors.New(
		"StartStepCommand must be created via NewStartStepCommand constructor",
	)
	ErrStepIndexIsInvalid = errors.New("step index must not be negative")
)

// StartStepCommand represents a request by an employee to start a job
// card step.
type StartStepCommand struct { //nolint:recvcheck //using for validation
	jobCardID  kernel.UUID
	stepIndex  int
	employeeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartStepCommand creates a command to start the step at stepIndex on
// behalf of the given employee.
func NewStartStepCommand(jobCardID kernel.UUID, stepIndex int, employeeID kernel.UUID) (StartStepCommand, error) {
	command := StartStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobCardID(jobCardID),
		command.setStepIndex(stepIndex),
		command.setEmployeeID(employeeID),
	); err != nil {
		return StartStepCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartStepCommand) Validate() error {
	return c.guard.Validate(ErrStartStepCommandIsNotConstructed)
}

// JobCardID returns the card holding the step.
func (c StartStepCommand) JobCardID() kernel.UUID {
	return c.jobCardID
}

// StepIndex returns the step's position in the card's sequence.
func (c StartStepCommand) StepIndex() int {
	return c.stepIndex
}

// EmployeeID returns the employee starting the step.
func (c StartStepCommand) EmployeeID() kernel.UUID {
	return c.employeeID
}

func (c *StartStepCommand) setJobCardID(jobCardID kernel.UUID) error {
	if err := jobCardID.Validate(); err != nil {
		return err
	}

	c.jobCardID = jobCardID
	return nil
}

func (c *StartStepCommand) setStepIndex(stepIndex int) error {
	if stepIndex < 0 {
		return ErrStepIndexIsInvalid
	}

	c.stepIndex = stepIndex
	return nil
}

func (c *StartStepCommand) setEmployeeID(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}

	c.employeeID = employeeID
	return nil
}
