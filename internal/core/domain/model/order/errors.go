package order

import (
	"errors"
	"fmt"
)

// ErrOverAllocation is a sentinel for batch quantities exceeding the
// remaining unplanned quantity of an order item.
var ErrOverAllocation = errors.New("batch exceeds remaining order quantity")

// OverAllocationError is returned when a planned batch would push an
// item's planned quantity past its ordered quantity.
type OverAllocationError struct {
	// ItemName identifies the over-allocated item.
	ItemName string
	// Requested is the batch quantity that was asked for.
	Requested int
	// Available is the remaining unplanned quantity.
	Available int
}

// NewOverAllocationError creates an OverAllocationError.
func NewOverAllocationError(itemName string, requested, available int) *OverAllocationError {
	return &OverAllocationError{ItemName: itemName, Requested: requested, Available: available}
}

// Error implements the error interface.
func (e *OverAllocationError) Error() string {
	return fmt.Sprintf("%s: item %q has %d unplanned, requested %d",
		ErrOverAllocation, e.ItemName, e.Available, e.Requested)
}

// Unwrap supports errors.Is checks against ErrOverAllocation.
func (e *OverAllocationError) Unwrap() error {
	return ErrOverAllocation
}

// ErrHoldNotAllowed is a sentinel for invalid hold/resume transitions.
var ErrHoldNotAllowed = errors.New("hold transition is not allowed")

// HoldError is returned when an order cannot be held or resumed from its
// current stage.
type HoldError struct {
	// Stage is the order's stage at the time of the attempt.
	Stage Stage
	// Reason explains why the transition was rejected.
	Reason string
}

// NewHoldError creates a HoldError.
func NewHoldError(stage Stage, reason string) *HoldError {
	return &HoldError{Stage: stage, Reason: reason}
}

// Error implements the error interface.
func (e *HoldError) Error() string {
	return fmt.Sprintf("%s: %s (stage %s)", ErrHoldNotAllowed, e.Reason, e.Stage)
}

// Unwrap supports errors.Is checks against ErrHoldNotAllowed.
func (e *HoldError) Unwrap() error {
	return ErrHoldNotAllowed
}
