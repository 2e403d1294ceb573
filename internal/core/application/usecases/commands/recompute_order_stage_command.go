package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrRecomputeOrderStageCommandIsNotConstructed = errors.New(
	"RecomputeOrderStageCommand must be created via NewRecomputeOrderStageCommand constructor",
)

// RecomputeOrderStageCommand re-derives the order's stage from the state of
// its job cards. The derived stage only ever moves the order forward.
type RecomputeOrderStageCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecomputeOrderStageCommand creates a command to recompute the stage.
func NewRecomputeOrderStageCommand(orderID kernel.UUID) (RecomputeOrderStageCommand, error) {
	command := RecomputeOrderStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return RecomputeOrderStageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecomputeOrderStageCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeOrderStageCommandIsNotConstructed)
}

// OrderID returns the order whose stage to recompute.
func (c RecomputeOrderStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RecomputeOrderStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
