package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var ErrSetOrderStageCommandIsNotConstructed = errors.New(
	"SetOrderStageCommand must be created via NewSetOrderStageCommand constructor",
)

// SetOrderStageCommand represents an administrative stage override on an
// order. Any pipeline stage may be set; the optional reason is logged for
// audit.
type SetOrderStageCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	stage   order.Stage
	reason  string

	guard guard.ConstructorGuard
}

// NewSetOrderStageCommand creates a command to set the order's stage.
// The reason may be empty; when present it is carried into the audit log.
func NewSetOrderStageCommand(orderID kernel.UUID, stage order.Stage, reason string) (SetOrderStageCommand, error) {
	command := SetOrderStageCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setStage(stage),
	); err != nil {
		return SetOrderStageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SetOrderStageCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStageCommandIsNotConstructed)
}

// OrderID returns the order to move.
func (c SetOrderStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Stage returns the target stage.
func (c SetOrderStageCommand) Stage() order.Stage {
	return c.stage
}

// Reason returns the optional audit reason.
func (c SetOrderStageCommand) Reason() string {
	return c.reason
}

func (c *SetOrderStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetOrderStageCommand) setStage(stage order.Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}
