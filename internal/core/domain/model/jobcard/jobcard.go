package jobcard

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// ErrJobCardIsNotConstructed is returned when using an improperly initialized JobCard.
var ErrJobCardIsNotConstructed = errors.New("JobCard must be created via NewJobCard constructor")

// JobCard represents one manufacturing batch for an order item. It is the
// aggregate root that owns the ordered step sequence, the quantity ledger
// flowing between steps, and the FQC sampling verdict.
//
// JobCard follows these invariants:
//   - quantity is positive; extraQty is a non-negative buffer that never
//     counts toward order fulfillment
//   - steps execute strictly in index order; a step cannot start before
//     its predecessor completes
//   - for every step, processed + rejected never exceeds received
//   - a step's received amount flows forward from the processed output of
//     the nearest preceding non-FQC step (the card's own quantity seeds
//     the pipeline); there are no back-edges
//   - a completed step is immutable; the card is never deleted, only split
//
// Example usage:
//
//	card, err := NewJobCard(id, orderID, itemID, 100, 5, steps)
//	if err != nil {
//	    return err
//	}
//	if err := card.StartStep(0, operatorID); err != nil {
//	    // predecessor gating or assignment failure
//	}
type JobCard struct {
	// id uniquely identifies the job card
	id kernel.UUID
	// orderID references the sales order the batch belongs to
	orderID kernel.UUID
	// itemID references the order item being manufactured
	itemID kernel.UUID
	// quantity is the planned batch size counted against the order
	quantity int
	// extraQty is the buffer produced alongside the batch
	extraQty int
	// status is the card's coarse lifecycle state
	status Status
	// steps is the ordered execution sequence
	steps []*Step
	// guard ensures the card was properly constructed
	guard guard.ConstructorGuard
}

// NewJobCard creates a new JobCard with the given planned quantity, buffer
// quantity and step sequence. This is the only way to create a valid card;
// the batch planner is its sole production caller.
//
// Parameters:
//   - id: unique identifier for the card (must be valid UUID)
//   - orderID: the owning sales order (must be valid UUID)
//   - itemID: the order item being manufactured (must be valid UUID)
//   - quantity: planned batch size (must be positive)
//   - extraQty: buffer quantity (must be non-negative)
//   - steps: ordered step sequence (must be non-empty, indexes 0..n-1)
func NewJobCard(
	id, orderID, itemID kernel.UUID,
	quantity, extraQty int,
	steps []*Step,
) (*JobCard, error) {
	card := &JobCard{
		status: Created,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		card.setID(id),
		card.setOrderID(orderID),
		card.setItemID(itemID),
		card.setQuantity(quantity),
		card.setExtraQty(extraQty),
		card.setSteps(steps),
	); err != nil {
		return nil, err
	}

	return card, nil
}

// RestoreJobCard reconstructs a JobCard aggregate from persistent storage,
// preserving its execution state at the time of persistence.
func RestoreJobCard(
	id, orderID, itemID kernel.UUID,
	quantity, extraQty int,
	status Status,
	steps []*Step,
) (*JobCard, error) {
	card := &JobCard{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		card.setID(id),
		card.setOrderID(orderID),
		card.setItemID(itemID),
		card.setQuantity(quantity),
		card.setExtraQty(extraQty),
		card.setStatus(status),
		card.setSteps(steps),
	); err != nil {
		return nil, err
	}

	return card, nil
}

// IsEqual compares two job cards by their unique identifiers.
func (c *JobCard) IsEqual(other *JobCard) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the card's unique identifier.
func (c *JobCard) ID() kernel.UUID { return c.id }

// OrderID returns the owning sales order's identifier.
func (c *JobCard) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the manufactured order item's identifier.
func (c *JobCard) ItemID() kernel.UUID { return c.itemID }

// Quantity returns the planned batch size counted against the order.
func (c *JobCard) Quantity() int { return c.quantity }

// ExtraQty returns the buffer quantity produced alongside the batch.
func (c *JobCard) ExtraQty() int { return c.extraQty }

// Status returns the card's coarse lifecycle state.
func (c *JobCard) Status() Status { return c.status }

// Steps returns the ordered step sequence.
func (c *JobCard) Steps() []*Step { return c.steps }

// Step returns the step at the given index.
func (c *JobCard) Step(index int) (*Step, error) {
	if index < 0 || index >= len(c.steps) {
		return nil, errs.NewValueIsOutOfRangeError("step index", index, 0, len(c.steps)-1)
	}
	return c.steps[index], nil
}

// ReceivedFor returns the authoritative received quantity for the step at
// the given index. This is the quantity ledger's read side:
//
//  1. the processed output of the nearest preceding non-FQC step that has
//     recorded quantities, else
//  2. the step's own stored received value, else
//  3. the card's total quantity (quantity + extraQty)
//
// Writing quantities on a step is the sole trigger that lets its successor
// compute a received amount, which creates an implicit forward-flow
// pipeline with no back-edges.
func (c *JobCard) ReceivedFor(index int) (int, error) {
	step, err := c.Step(index)
	if err != nil {
		return 0, err
	}

	for i := index - 1; i >= 0; i-- {
		prior := c.steps[i]
		if prior.StepType() == StepFQC {
			continue
		}
		if prior.Quantities().IsRecorded() {
			return prior.Quantities().Processed(), nil
		}
	}

	if step.Quantities().IsRecorded() {
		return step.Quantities().Received(), nil
	}

	return c.quantity + c.extraQty, nil
}

// StartStep moves the step at index to in-progress on behalf of the given
// employee.
//
// Returns SequenceViolationError when the immediately preceding step
// (skipped steps excluded) has not completed, AlreadyCompletedError for a
// finished step, and EmployeeNotAssignedError when the employee neither
// owns the step nor has claimed it. Starting the first step moves the card
// to InProgress.
func (c *JobCard) StartStep(index int, employeeID kernel.UUID) error {
	step, err := c.Step(index)
	if err != nil {
		return err
	}

	if blocker := c.blockingPredecessor(index); blocker != nil {
		return NewSequenceViolationError(step.Name(), blocker.Name())
	}

	if err := step.start(employeeID); err != nil {
		return err
	}

	if c.status == Created {
		c.status = InProgress
	}
	return nil
}

// blockingPredecessor returns the nearest preceding step that gates the
// given index, or nil when the step is unlocked. Skipped steps are not
// applicable to the batch and never gate their successors.
func (c *JobCard) blockingPredecessor(index int) *Step {
	for i := index - 1; i >= 0; i-- {
		prior := c.steps[i]
		if prior.Status() == StepSkipped {
			continue
		}
		if prior.Status() != StepCompleted {
			return prior
		}
		return nil
	}
	return nil
}

// CompleteStep finishes the step at index with the given quantity record
// and remarks.
//
// The received amount is derived through the quantity ledger; recording
// processed+rejected beyond it fails with QuantityViolationError. Pending
// sub-steps fail with ChecklistIncompleteError, a duplicate call with
// AlreadyCompletedError. FQC steps complete through SubmitFQC, never here.
// Completing the last gating step completes the card.
func (c *JobCard) CompleteStep(index int, processed, rejected int, remarks string, employeeID kernel.UUID) error {
	step, err := c.Step(index)
	if err != nil {
		return err
	}

	if step.StepType() == StepFQC {
		return errs.NewValueIsInvalidErrorWithCause(
			"step type is invalid",
			fmt.Errorf("FQC step %q completes through sampling submission", step.Name()))
	}

	if step.Status() == StepCompleted {
		return NewAlreadyCompletedError(step.Name())
	}

	if !step.IsAssignedTo(employeeID) {
		return NewEmployeeNotAssignedError(step.Name(), employeeID.String())
	}

	received, err := c.ReceivedFor(index)
	if err != nil {
		return err
	}
	if processed < 0 || rejected < 0 || processed+rejected > received {
		return NewQuantityViolationError(step.Name(), received, processed, rejected)
	}

	quantities, err := NewQuantities(received, processed, rejected)
	if err != nil {
		return err
	}

	if err := step.complete(quantities, remarks); err != nil {
		return err
	}

	c.refreshStatus()
	return nil
}

// Claim lets an employee take ownership of the open job step at index.
// Exactly one claimer can win; see Step.Claim.
func (c *JobCard) Claim(index int, employeeID kernel.UUID) error {
	step, err := c.Step(index)
	if err != nil {
		return err
	}
	return step.Claim(employeeID)
}

// ToggleSubStep flips a checklist item on the step at index.
func (c *JobCard) ToggleSubStep(index, subIndex int) error {
	step, err := c.Step(index)
	if err != nil {
		return err
	}
	return step.ToggleSubStep(subIndex)
}

// FQCEvaluation is the advisory verdict computed from the sample readings
// of an FQC step. The disposition is not recorded until the operator
// explicitly confirms it through SubmitFQC.
type FQCEvaluation struct {
	// Result is the aggregate verdict: Passed iff every parameter passed.
	Result Disposition
	// ParameterResults maps parameter names to their individual verdicts.
	ParameterResults map[string]Disposition
	// Message echoes the verdict for the operator confirmation prompt.
	Message string
}

// EvaluateFQC computes the advisory disposition for the FQC step at index.
//
// A parameter passes iff all of its samples individually validate true
// under its tolerance window; the job passes iff all parameters pass.
// Sample slots that cannot be judged (unparseable readings or standard)
// yield a ValidationError naming the parameter, since indeterminate
// samples block submission.
func (c *JobCard) EvaluateFQC(index int) (*FQCEvaluation, error) {
	step, err := c.Step(index)
	if err != nil {
		return nil, err
	}
	if step.StepType() != StepFQC {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"step type is invalid", fmt.Errorf("%q is not an FQC step", step.Name()))
	}

	evaluation := &FQCEvaluation{
		Result:           Passed,
		ParameterResults: make(map[string]Disposition, len(step.FQCParameters())),
	}

	for _, param := range step.FQCParameters() {
		result, indeterminate := param.Evaluate()
		if len(indeterminate) > 0 {
			return nil, NewValidationError(
				param.Spec().Name(),
				fmt.Sprintf("sample %d cannot be judged against standard %q",
					indeterminate[0]+1, param.Spec().StandardValue()))
		}
		evaluation.ParameterResults[param.Spec().Name()] = result
		if result == Failed {
			evaluation.Result = Failed
		}
	}

	evaluation.Message = fmt.Sprintf("FQC computed disposition: %s", evaluation.Result)
	return evaluation, nil
}

// SubmitFQC records the confirmed disposition of the FQC step at index and
// completes it with the given quantity record.
//
// Submission preconditions, each failing with ValidationError and leaving
// the card untouched (no partial submission):
//  1. every parameter's remarks is non-empty
//  2. every sample slot across every parameter is non-empty and judgeable
//  3. processed + rejected <= received for the step's quantity block
//  4. confirmed echoes the computed disposition, so the caller must have
//     seen the verdict before it is recorded
//
// On success the step is completed with the computed disposition and its
// quantities propagate forward like any other step's.
func (c *JobCard) SubmitFQC(index int, processed, rejected int, confirmed Disposition) error {
	step, err := c.Step(index)
	if err != nil {
		return err
	}
	if step.StepType() != StepFQC {
		return errs.NewValueIsInvalidErrorWithCause(
			"step type is invalid", fmt.Errorf("%q is not an FQC step", step.Name()))
	}
	if step.Status() == StepCompleted {
		return NewAlreadyCompletedError(step.Name())
	}

	for _, param := range step.FQCParameters() {
		if param.Remarks() == "" {
			return NewValidationError(param.Spec().Name(), "remarks are mandatory before submission")
		}
		if param.hasEmptySlot() {
			return NewValidationError(param.Spec().Name(), "every sample slot must be filled before submission")
		}
	}

	received, err := c.ReceivedFor(index)
	if err != nil {
		return err
	}
	if processed < 0 || rejected < 0 || processed+rejected > received {
		return NewQuantityViolationError(step.Name(), received, processed, rejected)
	}

	evaluation, err := c.EvaluateFQC(index)
	if err != nil {
		return err
	}
	if confirmed != evaluation.Result {
		return NewValidationError("confirmation",
			fmt.Sprintf("confirmed disposition %s does not match computed %s", confirmed, evaluation.Result))
	}

	quantities, err := NewQuantities(received, processed, rejected)
	if err != nil {
		return err
	}

	for _, param := range step.FQCParameters() {
		result, _ := param.Evaluate()
		param.result = result
	}

	step.quantities = quantities
	step.disposition = evaluation.Result
	step.status = StepCompleted

	c.refreshStatus()
	return nil
}

// Split carves splitQty out of the card into a new sibling card.
//
// The split must leave both halves non-empty: 0 < splitQty < quantity.
// The original keeps quantity−splitQty and all of its execution progress;
// the sibling receives splitQty, a structural deep copy of the step
// sequence reset to pending, and no buffer quantity. The two cards are
// independent execution units whose quantities sum to the original.
//
// Used when a batch must be partially expedited or partially reworked.
func (c *JobCard) Split(newID kernel.UUID, splitQty int) (*JobCard, error) {
	if err := newID.Validate(); err != nil {
		return nil, err
	}
	if splitQty <= 0 || splitQty >= c.quantity {
		return nil, errs.NewValueIsOutOfRangeError("split quantity", splitQty, 1, c.quantity-1)
	}

	steps := make([]*Step, 0, len(c.steps))
	for _, step := range c.steps {
		steps = append(steps, step.copyStep())
	}

	sibling, err := NewJobCard(newID, c.orderID, c.itemID, splitQty, 0, steps)
	if err != nil {
		return nil, err
	}

	c.quantity -= splitQty
	return sibling, nil
}

// HasStarted reports whether any step has been started on the card.
func (c *JobCard) HasStarted() bool {
	for _, step := range c.steps {
		if step.Status() == StepInProgress || step.Status() == StepCompleted {
			return true
		}
	}
	return false
}

// HasAssignments reports whether any step has employees assigned.
func (c *JobCard) HasAssignments() bool {
	for _, step := range c.steps {
		if len(step.AssignedEmployees()) > 0 {
			return true
		}
	}
	return false
}

// ManufacturingComplete reports whether every non-FQC step has finished.
func (c *JobCard) ManufacturingComplete() bool {
	for _, step := range c.steps {
		if step.StepType() == StepFQC || step.Status() == StepSkipped {
			continue
		}
		if step.Status() != StepCompleted {
			return false
		}
	}
	return true
}

// FQCStarted reports whether any FQC step is in progress or completed.
func (c *JobCard) FQCStarted() bool {
	for _, step := range c.steps {
		if step.StepType() == StepFQC && step.Status() != StepPending {
			return true
		}
	}
	return false
}

// refreshStatus completes the card once every step is terminal.
func (c *JobCard) refreshStatus() {
	for _, step := range c.steps {
		if !step.Status().IsTerminal() {
			return
		}
	}
	c.status = Completed
}

func (c *JobCard) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *JobCard) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *JobCard) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *JobCard) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}

func (c *JobCard) setExtraQty(extraQty int) error {
	if extraQty < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"extra quantity is invalid", fmt.Errorf("%d is negative", extraQty))
	}
	c.extraQty = extraQty
	return nil
}

func (c *JobCard) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *JobCard) setSteps(steps []*Step) error {
	if len(steps) == 0 {
		return errs.NewValueIsRequiredError("steps")
	}
	for i, step := range steps {
		if err := step.Validate(); err != nil {
			return err
		}
		if step.Index() != i {
			return errs.NewValueIsInvalidErrorWithCause(
				"step order is invalid",
				fmt.Errorf("step %q has index %d at position %d", step.Name(), step.Index(), i))
		}
	}
	c.steps = steps
	return nil
}

// Validate ensures the JobCard instance was properly constructed.
func (c *JobCard) Validate() error {
	if c == nil {
		return ErrJobCardIsNotConstructed
	}
	return c.guard.Validate(ErrJobCardIsNotConstructed)
}
