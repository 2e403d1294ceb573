package commands

import (
	"context"
)

// RecordOutwardReturnCommandHandler records return of an outward step's
// batch from the vendor, unblocking step completion.
type RecordOutwardReturnCommandHandler struct {
	uowFactory JobCardUoWFactory
}

// NewRecordOutwardReturnCommandHandler creates a handler for outward
// return recording.
func NewRecordOutwardReturnCommandHandler(uowFactory JobCardUoWFactory) RecordOutwardReturnCommandHandler {
	return RecordOutwardReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the return date on the outward step.
func (h RecordOutwardReturnCommandHandler) Handle(ctx context.Context, command RecordOutwardReturnCommand) error {
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

	step, err := card.Step(command.StepIndex())
	if err != nil {
		return err
	}

	if err = step.RecordOutwardReturn(command.ReturnDate()); err != nil {
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
