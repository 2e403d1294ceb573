package commands

import (
	"context"
	"fmt"

	"production/internal/core/ports"
)

// ResumeOrderCommandHandler takes an order off hold.
type ResumeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewResumeOrderCommandHandler creates a handler with its dependencies.
func NewResumeOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) ResumeOrderCommandHandler {
	return ResumeOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle resumes the order at the stage recorded while it was held.
func (h ResumeOrderCommandHandler) Handle(ctx context.Context, command ResumeOrderCommand) error {
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

	if err = orderAggregate.Resume(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Publish(ctx, ports.Notification{
		Kind:    "order_resumed",
		Subject: command.OrderID().String(),
		Message: fmt.Sprintf("order resumed at stage %s", orderAggregate.Stage()),
	})

	return nil
}
