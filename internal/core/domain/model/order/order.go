package order

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Order represents a confirmed sales order moving through the production
// pipeline. It is the aggregate root that owns the order items and the
// coarse stage state machine with its Hold/Resume side state.
//
// Order follows these invariants:
//   - every item keeps plannedQty <= orderedQty at all times
//   - the stage is always valid; OnHold is entered only through Hold,
//     which records the stage to restore on Resume
//   - terminal orders (Completed, Cancelled) accept no further planning
//
// Example usage:
//
//	o, err := NewOrder(id, partyID, items)
//	if err != nil {
//	    return err
//	}
//	if err := o.Hold("customer payment pending"); err != nil {
//	    // stage does not allow holding
//	}
type Order struct {
	// id uniquely identifies the order
	id kernel.UUID
	// partyID references the customer the order was confirmed for
	partyID kernel.UUID
	// items are the order lines batches are planned from
	items []*Item
	// stage is the coarse workflow state
	stage Stage
	// holdReason explains why the order is on hold, empty otherwise
	holdReason string
	// resumeStage is the stage to restore when the hold is lifted
	resumeStage Stage
	// guard ensures the order was properly constructed
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in the New stage.
//
// Parameters:
//   - id: unique identifier for the order (must be valid UUID)
//   - partyID: the customer reference (must be valid UUID)
//   - items: the order lines (must be non-empty)
func NewOrder(id, partyID kernel.UUID, items []*Item) (*Order, error) {
	o := &Order{
		stage: StageNew,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setPartyID(partyID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
func RestoreOrder(
	id, partyID kernel.UUID,
	items []*Item,
	stage Stage,
	holdReason string,
	resumeStage Stage,
) (*Order, error) {
	o := &Order{
		holdReason:  holdReason,
		resumeStage: resumeStage,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setPartyID(partyID),
		o.setItems(items),
		o.setStage(stage),
	); err != nil {
		return nil, err
	}

	if stage == StageOnHold {
		if err := resumeStage.Validate(); err != nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("resume stage", err)
		}
	}

	return o, nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// PartyID returns the customer reference.
func (o *Order) PartyID() kernel.UUID { return o.partyID }

// Items returns the order lines.
func (o *Order) Items() []*Item { return o.items }

// Stage returns the order's coarse workflow state.
func (o *Order) Stage() Stage { return o.stage }

// HoldReason returns why the order is on hold, empty when it is not.
func (o *Order) HoldReason() string { return o.holdReason }

// ResumeStage returns the stage a held order will resume into.
func (o *Order) ResumeStage() Stage { return o.resumeStage }

// IsOnHold reports whether the order is currently held.
func (o *Order) IsOnHold() bool { return o.stage == StageOnHold }

// Item returns the order line with the given item identifier.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ItemID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("item", itemID)
}

// SetStage moves the order to any valid pipeline stage. This is the
// administrative override: no forward-only rule is enforced, the caller
// records an audit reason alongside. OnHold is not settable directly;
// it is entered only through Hold so the resume stage is captured.
func (o *Order) SetStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	if stage == StageOnHold {
		return NewHoldError(o.stage, "use hold to pause an order")
	}
	if o.stage == StageOnHold {
		return NewHoldError(o.stage, "resume the order before changing its stage")
	}
	o.stage = stage
	return nil
}

// AdvanceStageTo raises the order's stage to the given pipeline stage if
// it is further along; it never regresses and is a no-op otherwise. Held
// orders advance their resume stage instead, so progress recorded while
// paused is not lost.
//
// This is the entry point used by stage derivation.
func (o *Order) AdvanceStageTo(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	if !stage.IsPipeline() {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid", fmt.Errorf("%s is not a pipeline stage", stage))
	}

	if o.stage == StageOnHold {
		if o.resumeStage.Before(stage) {
			o.resumeStage = stage
		}
		return nil
	}
	if o.stage.Before(stage) {
		o.stage = stage
	}
	return nil
}

// Hold pauses the order, recording the reason and the stage to restore.
// Holding requires a non-empty reason and an in-flight pipeline stage;
// a held or terminal order rejects the call.
func (o *Order) Hold(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("hold reason")
	}
	if !o.stage.CanHold() {
		return NewHoldError(o.stage, "order is not in an in-flight stage")
	}

	o.resumeStage = o.stage
	o.stage = StageOnHold
	o.holdReason = reason
	return nil
}

// Resume lifts the hold and restores the stage recorded when the order
// was paused (or a later stage, if progress was derived while held).
func (o *Order) Resume() error {
	if o.stage != StageOnHold {
		return NewHoldError(o.stage, "order is not on hold")
	}

	o.stage = o.resumeStage
	o.holdReason = ""
	o.resumeStage = UnknownStage
	return nil
}

// ReservePlannedQty commits qty units of the given item to a planned
// batch, enforcing plannedQty <= orderedQty. Terminal and held orders
// accept no further planning.
func (o *Order) ReservePlannedQty(itemID kernel.UUID, qty int) error {
	if o.stage.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"order stage is invalid", fmt.Errorf("order is %s", o.stage))
	}
	if o.stage == StageOnHold {
		return NewHoldError(o.stage, "resume the order before planning batches")
	}

	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	return item.ReservePlannedQty(qty)
}

// ReleasePlannedQty gives qty units of the given item back to the
// unplanned pool.
func (o *Order) ReleasePlannedQty(itemID kernel.UUID, qty int) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	return item.ReleasePlannedQty(qty)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPartyID(partyID kernel.UUID) error {
	if err := partyID.Validate(); err != nil {
		return err
	}
	o.partyID = partyID
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	o.stage = stage
	return nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}
