package commands

import (
	"context"

	"production/internal/core/ports"
)

// AssignStepCommandHandler adds an active employee to a step's assignment
// set so the employee can later start and complete the step.
type AssignStepCommandHandler struct {
	uowFactory JobCardUoWFactory
	directory  ports.EmployeeDirectory
}

// NewAssignStepCommandHandler creates a handler for step assignment.
func NewAssignStepCommandHandler(
	uowFactory JobCardUoWFactory,
	directory ports.EmployeeDirectory,
) AssignStepCommandHandler {
	return AssignStepCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
	}
}

// Handle assigns the employee. Assigning the same employee twice is a
// no-op on the aggregate side.
func (h AssignStepCommandHandler) Handle(ctx context.Context, command AssignStepCommand) error {
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

	step, err := card.Step(command.StepIndex())
	if err != nil {
		return err
	}

	if err = step.AssignEmployee(command.EmployeeID()); err != nil {
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
