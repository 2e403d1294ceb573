package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrHoldOrderCommandIsNotConstructed = errors.New(
	"HoldOrderCommand must be created via NewHoldOrderCommand constructor",
)

// HoldOrderCommand pauses an order. The reason is mandatory and is kept on
// the order until it is resumed.
type HoldOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewHoldOrderCommand creates a command to put an order on hold.
func NewHoldOrderCommand(orderID kernel.UUID, reason string) (HoldOrderCommand, error) {
	command := HoldOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setReason(reason),
	); err != nil {
		return HoldOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c HoldOrderCommand) Validate() error {
	return c.guard.Validate(ErrHoldOrderCommandIsNotConstructed)
}

// OrderID returns the order to pause.
func (c HoldOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns why the order is being held.
func (c HoldOrderCommand) Reason() string {
	return c.reason
}

func (c *HoldOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *HoldOrderCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
