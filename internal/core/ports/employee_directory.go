package ports

import (
	"context"

	"production/internal/core/domain/model/employee"
	"production/internal/core/domain/model/kernel"
)

// EmployeeDirectory resolves the weak employee references held on job card
// steps to live employee records. Steps never embed employee data, so every
// read goes through the directory and always reflects the current roster.
type EmployeeDirectory interface {
	// Get retrieves an employee by identifier.
	Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error)

	// GetMany retrieves the employees with the given identifiers. Unknown
	// identifiers are skipped rather than failing the whole lookup.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*employee.Employee, error)
}
