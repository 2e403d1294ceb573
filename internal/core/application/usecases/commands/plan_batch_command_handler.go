package commands

import (
	"context"
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
)

// ErrRawMaterialShortage is returned when planning would exceed current
// raw-material stock and the caller has not accepted the shortage.
var ErrRawMaterialShortage = errors.New("raw material stock is short for this batch")

// PlanBatchCommandHandler orchestrates batch planning: it reserves planned
// quantity on the order item, builds the job card through the BatchPlanner,
// and gates on raw-material shortages.
//
// Shortages are soft: the first call reports them with
// ErrRawMaterialShortage and persists nothing; a retry with
// IgnoreShortages set proceeds and returns the same shortages as warnings.
type PlanBatchCommandHandler struct {
	uowFactory  UoWFactory
	stockLedger ports.StockLedger
	notifier    ports.Notifier
}

// NewPlanBatchCommandHandler creates a handler for batch planning operations.
func NewPlanBatchCommandHandler(
	uowFactory UoWFactory,
	stockLedger ports.StockLedger,
	notifier ports.Notifier,
) PlanBatchCommandHandler {
	return PlanBatchCommandHandler{
		uowFactory:  uowFactory,
		stockLedger: stockLedger,
		notifier:    notifier,
	}
}

// Handle processes the batch planning command.
//
// Loads the order, reads current stock for the item's materials, plans the
// card, and persists order and card in one transaction. Returns the
// shortage report in every outcome so callers can render warnings.
func (h PlanBatchCommandHandler) Handle(ctx context.Context, command PlanBatchCommand) ([]services.Shortage, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	jobCardRepo := uow.JobCardRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	item, err := o.Item(command.ItemID())
	if err != nil {
		return nil, err
	}

	stock, err := h.availableStock(ctx, item.RMRequirements())
	if err != nil {
		return nil, err
	}

	card, shortages, err := services.NewBatchPlanner().Plan(
		o, command.ItemID(), command.JobCardID(),
		command.BatchQty(), command.ExtraQty(),
		command.StepOverrides(), stock)
	if err != nil {
		return nil, err
	}

	if len(shortages) > 0 && !command.IgnoreShortages() {
		return shortages, ErrRawMaterialShortage
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return shortages, err
	}

	if err = jobCardRepo.Add(ctx, card); err != nil {
		return shortages, err
	}

	if err = uow.Commit(ctx); err != nil {
		return shortages, err
	}

	_ = h.notifier.Publish(ctx, ports.Notification{
		Kind:    "batch_planned",
		Subject: card.ID().String(),
		Message: fmt.Sprintf("batch of %d planned for item %q", command.BatchQty(), item.Name()),
	})

	return shortages, nil
}

// availableStock reads current stock for the item's materials; an item
// without requirements skips the ledger round trip.
func (h PlanBatchCommandHandler) availableStock(
	ctx context.Context, requirements []order.RMRequirement,
) (map[kernel.UUID]float64, error) {
	if len(requirements) == 0 {
		return nil, nil
	}

	materialIDs := make([]kernel.UUID, 0, len(requirements))
	for _, req := range requirements {
		materialIDs = append(materialIDs, req.MaterialID())
	}
	return h.stockLedger.AvailableStock(ctx, materialIDs)
}
