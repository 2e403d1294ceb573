// Package employee provides the shop-floor employee model referenced by job
// card steps. Steps hold employee identifiers only; live records are
// resolved through the employee directory at read time.
package employee

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// ErrEmployeeIsNotConstructed is returned when using an improperly initialized Employee.
var ErrEmployeeIsNotConstructed = errors.New("Employee must be created via NewEmployee constructor")

// Status represents an employee's working status.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Active employees can be assigned to and execute steps.
	Active

	// Inactive employees have left and cannot work steps.
	Inactive

	// OnLeave employees are temporarily unavailable.
	OnLeave
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Active:        "Active",
		Inactive:      "Inactive",
		OnLeave:       "OnLeave",
	}
}

// StatusFromString parses a status from its string representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != UnknownStatus && strings.EqualFold(str, s) {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"employee status is invalid",
		fmt.Errorf("%q is not a valid employee status", s),
	)
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Active && s != Inactive && s != OnLeave {
		return errs.NewValueIsInvalidErrorWithCause(
			"employee status is invalid",
			fmt.Errorf("%d is not a valid employee status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Employee is a shop-floor worker who executes job card steps.
type Employee struct {
	id     kernel.UUID
	name   string
	role   string
	status Status
	guard  guard.ConstructorGuard
}

// NewEmployee creates an employee record.
func NewEmployee(id kernel.UUID, name, role string, status Status) (*Employee, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("employee name")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Employee{
		id:     id,
		name:   name,
		role:   role,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// ID returns the employee's unique identifier.
func (e *Employee) ID() kernel.UUID { return e.id }

// Name returns the employee's display name.
func (e *Employee) Name() string { return e.name }

// Role returns the employee's shop-floor role.
func (e *Employee) Role() string { return e.role }

// Status returns the employee's working status.
func (e *Employee) Status() Status { return e.status }

// CanWork reports whether the employee may claim, start, or complete
// steps right now.
func (e *Employee) CanWork() bool { return e.status == Active }

// Validate ensures the Employee instance was properly constructed.
func (e *Employee) Validate() error {
	if e == nil {
		return ErrEmployeeIsNotConstructed
	}
	return e.guard.Validate(ErrEmployeeIsNotConstructed)
}
