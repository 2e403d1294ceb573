package jobcard

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// ErrStepIsNotConstructed is returned when using an improperly initialized Step.
var ErrStepIsNotConstructed = errors.New("Step must be created via NewStepFromTemplate or RestoreStep")

// Step is one unit of work within a job card. Its position in the card's
// step sequence fixes execution order; the step itself owns its checklist,
// its quantity record, its assignment set and, for FQC steps, the sampled
// parameters.
//
// Steps reference employees weakly: assignedEmployees holds identifiers
// only, never embedded employee records, so directory updates can never
// leave stale copies inside a card. A step flagged as an open job starts
// with no assignees and may be claimed by any employee exactly once.
//
// A completed step is immutable; every later mutation attempt is rejected
// with AlreadyCompletedError, which also makes retried completion calls
// safe against double-counting.
type Step struct {
	// index is the step's position within the job card; it fixes execution order
	index int
	// name is the step's display name
	name string
	// stepType classifies execution semantics (normal, FQC, outward)
	stepType StepType
	// status is the current lifecycle state
	status StepStatus
	// disposition is the FQC verdict, NoDisposition for non-FQC steps
	disposition Disposition
	// assignedEmployees are weak references to the employees owning the step
	assignedEmployees []kernel.UUID
	// subSteps is the ordered checklist gating completion
	subSteps []*SubStep
	// quantities is the recorded received/processed/rejected triple
	quantities Quantities
	// remarks are free-form completion notes
	remarks string
	// isOpenJob marks an unassigned step any employee may claim
	isOpenJob bool
	// outward holds the vendor round-trip record for outward steps, else nil
	outward *OutwardDetails
	// fqcParameters are the sampled parameters for FQC steps, else empty
	fqcParameters []*Parameter
	// guard ensures the step was properly constructed
	guard kernel.ConstructorGuard
}

// NewStepFromTemplate clones a step template into an executable step.
//
// For FQC steps every parameter spec on the item is materialized with
// sampleCount empty sample slots. The clone is a structural deep copy:
// it shares nothing with the template, so later edits to the item master
// never retroactively alter an in-flight batch.
//
// Parameters:
//   - index: position within the job card's step sequence
//   - tmpl: the master step definition to clone
//   - fqcSpecs: parameter specs for FQC steps (ignored otherwise)
//   - sampleCount: sample slots per FQC parameter
func NewStepFromTemplate(index int, tmpl StepTemplate, fqcSpecs []ParameterSpec, sampleCount int) (*Step, error) {
	if index < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"step index is invalid", fmt.Errorf("%d is negative", index))
	}

	step := &Step{
		index:     index,
		name:      tmpl.Name(),
		stepType:  tmpl.StepType(),
		status:    StepPending,
		isOpenJob: tmpl.IsOpenJob(),
		guard:     kernel.NewConstructorGuard(),
	}

	for _, subName := range tmpl.SubStepNames() {
		sub, err := NewSubStep(subName)
		if err != nil {
			return nil, err
		}
		step.subSteps = append(step.subSteps, sub)
	}

	if tmpl.StepType() == StepOutward {
		step.outward = NewOutwardDetails()
	}

	if tmpl.StepType() == StepFQC {
		if len(fqcSpecs) == 0 {
			return nil, errs.NewValueIsRequiredError("FQC parameters")
		}
		for _, spec := range fqcSpecs {
			param, err := NewParameter(spec, sampleCount)
			if err != nil {
				return nil, err
			}
			step.fqcParameters = append(step.fqcParameters, param)
		}
	}

	return step, nil
}

// RestoreStep reconstructs a step from persistent storage with its full
// execution state.
func RestoreStep(
	index int,
	name string,
	stepType StepType,
	status StepStatus,
	disposition Disposition,
	assignedEmployees []kernel.UUID,
	subSteps []*SubStep,
	quantities Quantities,
	remarks string,
	isOpenJob bool,
	outward *OutwardDetails,
	fqcParameters []*Parameter,
) (*Step, error) {
	if index < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"step index is invalid", fmt.Errorf("%d is negative", index))
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("step name")
	}
	if err := errors.Join(stepType.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	for _, employeeID := range assignedEmployees {
		if err := employeeID.Validate(); err != nil {
			return nil, err
		}
	}
	if stepType == StepOutward && outward == nil {
		outward = NewOutwardDetails()
	}

	assigned := make([]kernel.UUID, len(assignedEmployees))
	copy(assigned, assignedEmployees)

	return &Step{
		index:             index,
		name:              name,
		stepType:          stepType,
		status:            status,
		disposition:       disposition,
		assignedEmployees: assigned,
		subSteps:          subSteps,
		quantities:        quantities,
		remarks:           remarks,
		isOpenJob:         isOpenJob,
		outward:           outward,
		fqcParameters:     fqcParameters,
		guard:             kernel.NewConstructorGuard(),
	}, nil
}

// Index returns the step's position within the job card.
func (s *Step) Index() int { return s.index }

// Name returns the step's display name.
func (s *Step) Name() string { return s.name }

// StepType returns the step's execution classification.
func (s *Step) StepType() StepType { return s.stepType }

// Status returns the current lifecycle state of the step.
func (s *Step) Status() StepStatus { return s.status }

// Disposition returns the FQC verdict, NoDisposition before submission and
// for non-FQC steps.
func (s *Step) Disposition() Disposition { return s.disposition }

// AssignedEmployees returns a copy of the step's employee identifier set.
func (s *Step) AssignedEmployees() []kernel.UUID {
	out := make([]kernel.UUID, len(s.assignedEmployees))
	copy(out, s.assignedEmployees)
	return out
}

// SubSteps returns the step's checklist items.
func (s *Step) SubSteps() []*SubStep { return s.subSteps }

// Quantities returns the recorded received/processed/rejected triple.
func (s *Step) Quantities() Quantities { return s.quantities }

// Remarks returns the completion notes recorded for the step.
func (s *Step) Remarks() string { return s.remarks }

// IsOpenJob reports whether the step is unassigned and claimable.
func (s *Step) IsOpenJob() bool { return s.isOpenJob }

// Outward returns the vendor round-trip record, nil for non-outward steps.
func (s *Step) Outward() *OutwardDetails { return s.outward }

// FQCParameters returns the sampled parameters, empty for non-FQC steps.
func (s *Step) FQCParameters() []*Parameter { return s.fqcParameters }

// IsAssignedTo reports whether the given employee is in the step's
// assignment set.
func (s *Step) IsAssignedTo(employeeID kernel.UUID) bool {
	for _, id := range s.assignedEmployees {
		if id.IsEqual(employeeID) {
			return true
		}
	}
	return false
}

// AssignEmployee adds an employee to the step's assignment set.
// Assigning an already-assigned employee is a no-op. Completed steps are
// immutable and reject the assignment.
func (s *Step) AssignEmployee(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}
	if s.status == StepCompleted {
		return NewAlreadyCompletedError(s.name)
	}
	if s.IsAssignedTo(employeeID) {
		return nil
	}
	s.assignedEmployees = append(s.assignedEmployees, employeeID)
	return nil
}

// Claim lets an employee take ownership of an open job step.
//
// A claim succeeds only while the step is still flagged as an open job
// with an empty assignment set; it then becomes the sole assignee and the
// open-job flag is cleared, so a second claim fails with
// AlreadyClaimedError. Claiming is only possible before the step starts.
//
// This in-memory check is backed by a conditional update at the storage
// layer so that exactly one of two concurrent claimers wins.
func (s *Step) Claim(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}
	if s.status == StepCompleted {
		return NewAlreadyCompletedError(s.name)
	}
	if !s.isOpenJob || len(s.assignedEmployees) > 0 {
		return NewAlreadyClaimedError(s.name)
	}

	s.assignedEmployees = []kernel.UUID{employeeID}
	s.isOpenJob = false
	return nil
}

// start moves the step to in-progress on behalf of the given employee.
// Gating against the predecessor step happens on the job card, which owns
// the step sequence.
func (s *Step) start(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}

	switch s.status {
	case StepCompleted, StepSkipped:
		return NewAlreadyCompletedError(s.name)
	case StepInProgress:
		return errs.NewValueIsInvalidErrorWithCause(
			"step is invalid", fmt.Errorf("%q is already in progress", s.name))
	}

	if s.isOpenJob {
		return NewEmployeeNotAssignedError(s.name, employeeID.String())
	}
	if !s.IsAssignedTo(employeeID) {
		return NewEmployeeNotAssignedError(s.name, employeeID.String())
	}

	s.status = StepInProgress
	return nil
}

// pendingSubSteps returns the names of checklist items not yet done.
func (s *Step) pendingSubSteps() []string {
	var pending []string
	for _, sub := range s.subSteps {
		if !sub.Done() {
			pending = append(pending, sub.Name())
		}
	}
	return pending
}

// complete finishes the step with the given validated quantities and
// remarks. The job card derives and validates the quantities before
// calling; the step only gates on its own state and checklist.
func (s *Step) complete(quantities Quantities, remarks string) error {
	switch s.status {
	case StepCompleted, StepSkipped:
		return NewAlreadyCompletedError(s.name)
	case StepPending:
		return errs.NewValueIsInvalidErrorWithCause(
			"step is invalid", fmt.Errorf("%q has not been started", s.name))
	}

	if pending := s.pendingSubSteps(); len(pending) > 0 {
		return NewChecklistIncompleteError(s.name, pending)
	}

	if s.stepType == StepOutward && !s.outward.IsReturned() {
		return NewValidationError("returnDate", fmt.Sprintf("outward step %q has no return date recorded", s.name))
	}

	s.quantities = quantities
	s.remarks = remarks
	s.status = StepCompleted
	return nil
}

// ToggleSubStep flips a checklist item between done and pending.
// Completed steps are immutable and reject the toggle.
func (s *Step) ToggleSubStep(subIndex int) error {
	if s.status == StepCompleted {
		return NewAlreadyCompletedError(s.name)
	}
	if subIndex < 0 || subIndex >= len(s.subSteps) {
		return errs.NewValueIsOutOfRangeError("sub-step index", subIndex, 0, len(s.subSteps)-1)
	}
	s.subSteps[subIndex].Toggle()
	return nil
}

// RecordOutwardSent marks an outward step's batch as dispatched to a vendor.
func (s *Step) RecordOutwardSent(vendorName string, sentDate time.Time) error {
	if s.stepType != StepOutward {
		return errs.NewValueIsInvalidErrorWithCause(
			"step type is invalid", fmt.Errorf("%q is not an outward step", s.name))
	}
	if s.status == StepCompleted {
		return NewAlreadyCompletedError(s.name)
	}
	return s.outward.RecordSent(vendorName, sentDate)
}

// RecordOutwardReturn marks an outward step's batch as received back.
func (s *Step) RecordOutwardReturn(returnDate time.Time) error {
	if s.stepType != StepOutward {
		return errs.NewValueIsInvalidErrorWithCause(
			"step type is invalid", fmt.Errorf("%q is not an outward step", s.name))
	}
	if s.status == StepCompleted {
		return NewAlreadyCompletedError(s.name)
	}
	return s.outward.RecordReturn(returnDate)
}

// copyStep returns a fresh pending copy of the step for a split sibling:
// same name, type, checklist shape, assignment set and open-job flag, but
// no execution progress, quantities, or sample readings.
func (s *Step) copyStep() *Step {
	assigned := make([]kernel.UUID, len(s.assignedEmployees))
	copy(assigned, s.assignedEmployees)

	subSteps := make([]*SubStep, 0, len(s.subSteps))
	for _, sub := range s.subSteps {
		subSteps = append(subSteps, sub.copySubStep())
	}

	var params []*Parameter
	for _, param := range s.fqcParameters {
		params = append(params, param.copyParameter())
	}

	var outward *OutwardDetails
	if s.stepType == StepOutward {
		outward = NewOutwardDetails()
	}

	return &Step{
		index:             s.index,
		name:              s.name,
		stepType:          s.stepType,
		status:            StepPending,
		assignedEmployees: assigned,
		subSteps:          subSteps,
		isOpenJob:         s.isOpenJob,
		outward:           outward,
		fqcParameters:     params,
		guard:             kernel.NewConstructorGuard(),
	}
}

// Validate ensures the Step instance was properly constructed.
func (s *Step) Validate() error {
	if s == nil {
		return ErrStepIsNotConstructed
	}
	return s.guard.Validate(ErrStepIsNotConstructed)
}
