package jobcard

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for execution rule violations. Every rejected operation
// unwraps to exactly one of these, so callers can classify failures with
// errors.Is and render a specific message from the typed error's fields.
var (
	// ErrSequenceViolation indicates a step was started before its predecessor completed.
	ErrSequenceViolation = errors.New("sequence violation")
	// ErrQuantityViolation indicates processed+rejected exceeded the received quantity.
	ErrQuantityViolation = errors.New("quantity violation")
	// ErrChecklistIncomplete indicates a step was completed while sub-steps were pending.
	ErrChecklistIncomplete = errors.New("checklist incomplete")
	// ErrAlreadyClaimed indicates a concurrent claim lost the race for an open job.
	ErrAlreadyClaimed = errors.New("step already claimed")
	// ErrAlreadyCompleted indicates a duplicate mutation against a completed step.
	ErrAlreadyCompleted = errors.New("step already completed")
	// ErrValidation indicates an FQC submission precondition was unmet.
	ErrValidation = errors.New("validation failed")
	// ErrEmployeeNotAssigned indicates the acting employee does not own the step.
	ErrEmployeeNotAssigned = errors.New("employee is not assigned to step")
)

// SequenceViolationError reports an attempt to start a step whose
// predecessor (by order index) has not completed yet.
type SequenceViolationError struct {
	StepName  string
	BlockedBy string
}

// NewSequenceViolationError creates a SequenceViolationError naming the
// offending step and the predecessor that must complete first.
func NewSequenceViolationError(stepName, blockedBy string) *SequenceViolationError {
	return &SequenceViolationError{StepName: stepName, BlockedBy: blockedBy}
}

func (e *SequenceViolationError) Error() string {
	return fmt.Sprintf("%s: %q cannot start before %q is completed", ErrSequenceViolation, e.StepName, e.BlockedBy)
}

func (e *SequenceViolationError) Unwrap() error {
	return ErrSequenceViolation
}

// QuantityViolationError reports a quantity record where processed+rejected
// would exceed the step's received quantity.
type QuantityViolationError struct {
	StepName  string
	Received  int
	Processed int
	Rejected  int
}

// NewQuantityViolationError creates a QuantityViolationError carrying the
// full quantity triple for the offending step.
func NewQuantityViolationError(stepName string, received, processed, rejected int) *QuantityViolationError {
	return &QuantityViolationError{StepName: stepName, Received: received, Processed: processed, Rejected: rejected}
}

func (e *QuantityViolationError) Error() string {
	return fmt.Sprintf("%s: step %q processed %d + rejected %d exceeds received %d",
		ErrQuantityViolation, e.StepName, e.Processed, e.Rejected, e.Received)
}

func (e *QuantityViolationError) Unwrap() error {
	return ErrQuantityViolation
}

// ChecklistIncompleteError reports a completion attempt while one or more
// sub-steps remain pending.
type ChecklistIncompleteError struct {
	StepName string
	Pending  []string
}

// NewChecklistIncompleteError creates a ChecklistIncompleteError listing the
// pending sub-steps blocking completion.
func NewChecklistIncompleteError(stepName string, pending []string) *ChecklistIncompleteError {
	return &ChecklistIncompleteError{StepName: stepName, Pending: pending}
}

func (e *ChecklistIncompleteError) Error() string {
	return fmt.Sprintf("%s: step %q has pending sub-steps: %s",
		ErrChecklistIncomplete, e.StepName, strings.Join(e.Pending, ", "))
}

func (e *ChecklistIncompleteError) Unwrap() error {
	return ErrChecklistIncomplete
}

// AlreadyClaimedError reports a lost claim race on an open job step.
type AlreadyClaimedError struct {
	StepName string
}

// NewAlreadyClaimedError creates an AlreadyClaimedError for the given step.
func NewAlreadyClaimedError(stepName string) *AlreadyClaimedError {
	return &AlreadyClaimedError{StepName: stepName}
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("%s: %q", ErrAlreadyClaimed, e.StepName)
}

func (e *AlreadyClaimedError) Unwrap() error {
	return ErrAlreadyClaimed
}

// AlreadyCompletedError reports a duplicate mutation against a completed
// step, typically a retried complete call.
type AlreadyCompletedError struct {
	StepName string
}

// NewAlreadyCompletedError creates an AlreadyCompletedError for the given step.
func NewAlreadyCompletedError(stepName string) *AlreadyCompletedError {
	return &AlreadyCompletedError{StepName: stepName}
}

func (e *AlreadyCompletedError) Error() string {
	return fmt.Sprintf("%s: %q", ErrAlreadyCompleted, e.StepName)
}

func (e *AlreadyCompletedError) Unwrap() error {
	return ErrAlreadyCompleted
}

// ValidationError reports an unmet submission precondition, naming the field
// or parameter the caller must correct. Nothing is persisted when returned.
type ValidationError struct {
	Name   string
	Reason string
}

// NewValidationError creates a ValidationError for the named field or parameter.
func NewValidationError(name, reason string) *ValidationError {
	return &ValidationError{Name: name, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Name, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// EmployeeNotAssignedError reports a step mutation by an employee who is
// neither assigned to the step nor eligible through an open-job claim.
type EmployeeNotAssignedError struct {
	StepName   string
	EmployeeID string
}

// NewEmployeeNotAssignedError creates an EmployeeNotAssignedError for the
// given step and employee.
func NewEmployeeNotAssignedError(stepName, employeeID string) *EmployeeNotAssignedError {
	return &EmployeeNotAssignedError{StepName: stepName, EmployeeID: employeeID}
}

func (e *EmployeeNotAssignedError) Error() string {
	return fmt.Sprintf("%s: employee %s on step %q", ErrEmployeeNotAssigned, e.EmployeeID, e.StepName)
}

func (e *EmployeeNotAssignedError) Unwrap() error {
	return ErrEmployeeNotAssigned
}
