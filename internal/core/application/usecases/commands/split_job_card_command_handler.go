package commands

import (
	"context"
)

// SplitJobCardCommandHandler splits an existing job card into two
// independent execution units whose quantities sum to the original.
type SplitJobCardCommandHandler struct {
	uowFactory JobCardUoWFactory
}

// NewSplitJobCardCommandHandler creates a handler for job card splits.
func NewSplitJobCardCommandHandler(uowFactory JobCardUoWFactory) SplitJobCardCommandHandler {
	return SplitJobCardCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the split command: loads the card, splits it, and
// persists both halves in one transaction.
func (h SplitJobCardCommandHandler) Handle(ctx context.Context, command SplitJobCardCommand) error {
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

	sibling, err := card.Split(command.NewJobCardID(), command.SplitQty())
	if err != nil {
		return err
	}

	if err = jobCardRepo.Update(ctx, card); err != nil {
		return err
	}

	if err = jobCardRepo.Add(ctx, sibling); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
