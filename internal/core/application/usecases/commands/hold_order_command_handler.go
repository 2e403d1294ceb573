package commands

import (
	"context"
	"fmt"

	"production/internal/core/ports"
)

// HoldOrderCommandHandler pauses an order while preserving its place in the
// pipeline.
type HoldOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewHoldOrderCommandHandler creates a handler with its dependencies.
func NewHoldOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) HoldOrderCommandHandler {
	return HoldOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle puts the order on hold.
func (h HoldOrderCommandHandler) Handle(ctx context.Context, command HoldOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orderAggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = orderAggregate.Hold(command.Reason()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Publish(ctx, ports.Notification{
		Kind:    "order_held",
		Subject: command.OrderID().String(),
		Message: fmt.Sprintf("order put on hold: %s", command.Reason()),
	})

	return nil
}
