package jobcard

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Quantities is a value object holding the received/processed/rejected
// triple for a step. It enforces the conservation invariant
// processed + rejected <= received at construction, so a stored Quantities
// can never represent more output than input.
//
// For outward steps the same triple is read as sent-to-vendor (received)
// and received-back (processed); the invariant is unchanged.
type Quantities struct {
	received  int
	processed int
	rejected  int
}

// NewQuantities creates a Quantities value after validating that no
// component is negative and that processed+rejected does not exceed
// received.
//
// Returns:
//   - Quantities: the validated triple
//   - error: a validation error naming the offending component
func NewQuantities(received, processed, rejected int) (Quantities, error) {
	if received < 0 {
		return Quantities{}, errs.NewValueIsInvalidErrorWithCause(
			"received is invalid", fmt.Errorf("%d is negative", received))
	}
	if processed < 0 {
		return Quantities{}, errs.NewValueIsInvalidErrorWithCause(
			"processed is invalid", fmt.Errorf("%d is negative", processed))
	}
	if rejected < 0 {
		return Quantities{}, errs.NewValueIsInvalidErrorWithCause(
			"rejected is invalid", fmt.Errorf("%d is negative", rejected))
	}
	if processed+rejected > received {
		return Quantities{}, errs.NewValueIsInvalidErrorWithCause(
			"quantities are invalid",
			fmt.Errorf("processed %d + rejected %d exceeds received %d", processed, rejected, received))
	}

	return Quantities{received: received, processed: processed, rejected: rejected}, nil
}

// Received returns the quantity that entered the step.
func (q Quantities) Received() int {
	return q.received
}

// Processed returns the quantity that passed through the step.
func (q Quantities) Processed() int {
	return q.processed
}

// Rejected returns the quantity rejected at the step.
func (q Quantities) Rejected() int {
	return q.rejected
}

// IsRecorded reports whether any quantities have been written for the step.
// An unrecorded triple means the step's received amount must be derived
// from its predecessors.
func (q Quantities) IsRecorded() bool {
	return q.received > 0 || q.processed > 0 || q.rejected > 0
}
