package commands

import (
	"errors"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrPlanBatchCommandIsNotConstructed = errors.New(
		"PlanBatchCommand must be created via NewPlanBatchCommand constructor",
	)
	ErrBatchQtyIsInvalid = errors.New("batch quantity must be greater than 0")
	ErrExtraQtyIsInvalid = errors.New("extra quantity must not be negative")
)

// PlanBatchCommand represents a request to plan a new manufacturing batch
// for an order item, producing a job card.
//
// Example:
//
//	cmd, err := NewPlanBatchCommand(orderID, itemID, kernel.NewUUID(), 100, 5, nil, false)
//	if err != nil {
//	    return fmt.Errorf("invalid batch data: %w", err)
//	}
//
//	handler := NewPlanBatchCommandHandler(uowFactory, stockLedger, notifier)
//	shortages, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrRawMaterialShortage) {
//	    // surface shortages; retry with ignoreShortages once accepted
//	}
type PlanBatchCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	itemID          kernel.UUID
	jobCardID       kernel.UUID
	batchQty        int
	extraQty        int
	stepOverrides   []jobcard.StepTemplate
	ignoreShortages bool

	guard guard.ConstructorGuard
}

// NewPlanBatchCommand creates a command to plan a batch of batchQty (plus
// extraQty buffer) against an order item. stepOverrides, when non-empty,
// replace the item's step templates for this batch. ignoreShortages makes
// the handler proceed despite raw-material shortage warnings.
func NewPlanBatchCommand(
	orderID, itemID, jobCardID kernel.UUID,
	batchQty, extraQty int,
	stepOverrides []jobcard.StepTemplate,
	ignoreShortages bool,
) (PlanBatchCommand, error) {
	command := PlanBatchCommand{
		stepOverrides:   stepOverrides,
		ignoreShortages: ignoreShortages,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setItemID(itemID),
		command.setJobCardID(jobCardID),
		command.setBatchQty(batchQty),
		command.setExtraQty(extraQty),
	); err != nil {
		return PlanBatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanBatchCommand) Validate() error {
	return c.guard.Validate(ErrPlanBatchCommandIsNotConstructed)
}

// OrderID returns the order the batch is planned against.
func (c PlanBatchCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the order item being manufactured.
func (c PlanBatchCommand) ItemID() kernel.UUID {
	return c.itemID
}

// JobCardID returns the identifier for the new job card.
func (c PlanBatchCommand) JobCardID() kernel.UUID {
	return c.jobCardID
}

// BatchQty returns the planned batch size.
func (c PlanBatchCommand) BatchQty() int {
	return c.batchQty
}

// ExtraQty returns the buffer quantity.
func (c PlanBatchCommand) ExtraQty() int {
	return c.extraQty
}

// StepOverrides returns the per-batch step templates, empty when the
// item's own templates apply.
func (c PlanBatchCommand) StepOverrides() []jobcard.StepTemplate {
	out := make([]jobcard.StepTemplate, len(c.stepOverrides))
	copy(out, c.stepOverrides)
	return out
}

// IgnoreShortages reports whether the caller accepted planning under
// known raw-material shortages.
func (c PlanBatchCommand) IgnoreShortages() bool {
	return c.ignoreShortages
}

func (c *PlanBatchCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlanBatchCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *PlanBatchCommand) setJobCardID(jobCardID kernel.UUID) error {
	if err := jobCardID.Validate(); err != nil {
		return err
	}

	c.jobCardID = jobCardID
	return nil
}

func (c *PlanBatchCommand) setBatchQty(batchQty int) error {
	if batchQty <= 0 {
		return ErrBatchQtyIsInvalid
	}

	c.batchQty = batchQty
	return nil
}

func (c *PlanBatchCommand) setExtraQty(extraQty int) error {
	if extraQty < 0 {
		return ErrExtraQtyIsInvalid
	}

	c.extraQty = extraQty
	return nil
}
