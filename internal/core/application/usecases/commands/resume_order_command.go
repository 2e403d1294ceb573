package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrResumeOrderCommandIsNotConstructed = errors.New(
	"ResumeOrderCommand must be created via NewResumeOrderCommand constructor",
)

// ResumeOrderCommand takes an order off hold, returning it to the stage it
// would otherwise be at.
type ResumeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResumeOrderCommand creates a command to resume a held order.
func NewResumeOrderCommand(orderID kernel.UUID) (ResumeOrderCommand, error) {
	command := ResumeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return ResumeOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ResumeOrderCommand) Validate() error {
	return c.guard.Validate(ErrResumeOrderCommandIsNotConstructed)
}

// OrderID returns the order to resume.
func (c ResumeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ResumeOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
