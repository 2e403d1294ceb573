package commands

import (
	"context"

	"production/internal/core/domain/services"
)

// RecomputeOrderStageCommandHandler re-derives the order's stage from its
// job cards and advances the order when the derived stage is further along.
type RecomputeOrderStageCommandHandler struct {
	uowFactory      UoWFactory
	stageCalculator services.StageCalculator
}

// NewRecomputeOrderStageCommandHandler creates a handler with its
// dependencies.
func NewRecomputeOrderStageCommandHandler(uowFactory UoWFactory) RecomputeOrderStageCommandHandler {
	return RecomputeOrderStageCommandHandler{
		uowFactory:      uowFactory,
		stageCalculator: services.NewStageCalculator(),
	}
}

// Handle derives the stage implied by the order's job cards and applies it.
// Held orders accumulate derived progress without leaving the hold state.
func (h RecomputeOrderStageCommandHandler) Handle(ctx context.Context, command RecomputeOrderStageCommand) error {
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

	cards, err := uow.JobCardRepository().GetAllForOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	derived := h.stageCalculator.Derive(cards)

	if err = orderAggregate.AdvanceStageTo(derived); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
