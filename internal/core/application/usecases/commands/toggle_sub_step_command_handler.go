package commands

import (
	"context"
)

// ToggleSubStepCommandHandler flips a checklist item on a job card step.
type ToggleSubStepCommandHandler struct {
	uowFactory JobCardUoWFactory
}

// NewToggleSubStepCommandHandler creates a handler for checklist toggles.
func NewToggleSubStepCommandHandler(uowFactory JobCardUoWFactory) ToggleSubStepCommandHandler {
	return ToggleSubStepCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the toggle command.
func (h ToggleSubStepCommandHandler) Handle(ctx context.Context, command ToggleSubStepCommand) error {
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

	jobCardRepo := uow.JobCardRepository()

	card, err := jobCardRepo.Get(ctx, command.JobCardID())
	if err != nil {
		return err
	}

	if err = card.ToggleSubStep(command.StepIndex(), command.SubStepIndex()); err != nil {
		return err
	}

	if err = jobCardRepo.Update(ctx, card); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
