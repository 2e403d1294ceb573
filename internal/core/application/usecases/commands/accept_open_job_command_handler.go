package commands

import (
	"context"

	"production/internal/core/ports"
)

// AcceptOpenJobCommandHandler claims an open job step for an employee.
//
// The domain-level Claim check rejects obviously stale requests; the
// authoritative arbitration is the repository's ClaimStep, a single
// conditional update keyed on the assignment set still being empty, so
// exactly one of two concurrent claimers wins (never read-then-write).
type AcceptOpenJobCommandHandler struct {
	uowFactory JobCardUoWFactory
	directory  ports.EmployeeDirectory
}

// NewAcceptOpenJobCommandHandler creates a handler for open job claims.
func NewAcceptOpenJobCommandHandler(
	uowFactory JobCardUoWFactory,
	directory ports.EmployeeDirectory,
) AcceptOpenJobCommandHandler {
	return AcceptOpenJobCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
	}
}

// Handle processes the claim. Losers of the race receive AlreadyClaimed
// and should refresh and pick another job.
func (h AcceptOpenJobCommandHandler) Handle(ctx context.Context, command AcceptOpenJobCommand) error {
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

	if err = card.Claim(command.StepIndex(), command.EmployeeID()); err != nil {
		return err
	}

	if err = jobCardRepo.ClaimStep(ctx, command.JobCardID(), command.StepIndex(), command.EmployeeID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
