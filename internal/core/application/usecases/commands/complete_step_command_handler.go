package commands

import (
	"context"

	"production/internal/core/ports"
)

// CompleteStepCommandHandler finishes a job card step with its quantity
// record. The quantity ledger, checklist, and duplicate-submission rules
// live on the aggregate; a retried call against a completed step is
// rejected with AlreadyCompleted, never double-counted.
type CompleteStepCommandHandler struct {
	uowFactory JobCardUoWFactory
	directory  ports.EmployeeDirectory
}

// NewCompleteStepCommandHandler creates a handler for step completion.
func NewCompleteStepCommandHandler(
	uowFactory JobCardUoWFactory,
	directory ports.EmployeeDirectory,
) CompleteStepCommandHandler {
	return CompleteStepCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
	}
}

// Handle processes the completion command.
func (h CompleteStepCommandHandler) Handle(ctx context.Context, command CompleteStepCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	worker, err := h.directory.Get(ctx, command.EmployeeID())
	if err != nil {
		return err
	}
	if !worker.CanWork() {
		return ErrEmployeeCannotWork
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

	if err = card.CompleteStep(
		command.StepIndex(),
		command.Processed(), command.Rejected(),
		command.Remarks(),
		command.EmployeeID(),
	); err != nil {
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
