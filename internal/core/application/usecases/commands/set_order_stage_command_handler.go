package commands

import (
	"context"
	"fmt"
	"log/slog"

	"production/internal/core/ports"
)

// SetOrderStageCommandHandler applies a manual stage override to an order.
type SetOrderStageCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewSetOrderStageCommandHandler creates a handler with its dependencies.
func NewSetOrderStageCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) SetOrderStageCommandHandler {
	return SetOrderStageCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle sets the stage on the order and records the change for audit.
func (h SetOrderStageCommandHandler) Handle(ctx context.Context, command SetOrderStageCommand) error {
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

	previous := orderAggregate.Stage()

	if err = orderAggregate.SetStage(command.Stage()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	slog.Info("order stage set manually",
		"order_id", command.OrderID().String(),
		"from", previous.String(),
		"to", command.Stage().String(),
		"reason", command.Reason(),
	)

	_ = h.notifier.Publish(ctx, ports.Notification{
		Kind:    "order_stage_set",
		Subject: command.OrderID().String(),
		Message: fmt.Sprintf("stage changed from %s to %s", previous, command.Stage()),
	})

	return nil
}
