package commands

import (
	"context"
)

// RecordOutwardSentCommandHandler records dispatch of an outward step's
// batch to an external vendor.
type RecordOutwardSentCommandHandler struct {
	uowFactory JobCardUoWFactory
}

// NewRecordOutwardSentCommandHandler creates a handler for outward
// dispatch recording.
func NewRecordOutwardSentCommandHandler(uowFactory JobCardUoWFactory) RecordOutwardSentCommandHandler {
	return RecordOutwardSentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the vendor and sent date on the outward step.
func (h RecordOutwardSentCommandHandler) Handle(ctx context.Context, command RecordOutwardSentCommand) error {
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

	if err = step.RecordOutwardSent(command.VendorName(), command.SentDate()); err != nil {
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
