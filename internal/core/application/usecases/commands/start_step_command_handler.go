package commands

import (
	"context"
	"errors"

	"production/internal/core/ports"
)

// ErrEmployeeCannotWork is returned when the acting employee is inactive
// or on leave.
var ErrEmployeeCannotWork = errors.New("employee is not active")

// StartStepCommandHandler moves a job card step to in-progress on behalf
// of an employee, after checking the employee is active in the directory.
// Sequencing and assignment rules live on the aggregate.
type StartStepCommandHandler struct {
	uowFactory JobCardUoWFactory
	directory  ports.EmployeeDirectory
}

// NewStartStepCommandHandler creates a handler for step start operations.
func NewStartStepCommandHandler(
	uowFactory JobCardUoWFactory,
	directory ports.EmployeeDirectory,
) StartStepCommandHandler {
	return StartStepCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
	}
}

// Handle processes the start command. A step that is not yet unlocked is
// rejected synchronously with SequenceViolation; nothing queues.
func (h StartStepCommandHandler) Handle(ctx context.Context, command StartStepCommand) error {
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

	if err = card.StartStep(command.StepIndex(), command.EmployeeID()); err != nil {
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
