package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrGetOverdueOutwardStepsQueryIsNotConstructed = errors.New(
		"GetOverdueOutwardStepsQuery must be created via NewGetOverdueOutwardStepsQuery constructor",
	)
)

// GetOverdueOutwardStepsQuery retrieves outward steps whose batch was
// dispatched to a vendor before the cutoff and has not been returned.
// The reminder job scans these to chase vendors.
type GetOverdueOutwardStepsQuery struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueOutwardStepsQuery creates a query listing batches sent
// before cutoff with no recorded return.
func NewGetOverdueOutwardStepsQuery(cutoff time.Time) (GetOverdueOutwardStepsQuery, error) {
	if cutoff.IsZero() {
		return GetOverdueOutwardStepsQuery{}, errs.NewValueIsRequiredError("cutoff")
	}

	return GetOverdueOutwardStepsQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueOutwardStepsQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOutwardStepsQueryIsNotConstructed)
}

// Cutoff returns the dispatch time boundary.
func (q GetOverdueOutwardStepsQuery) Cutoff() time.Time {
	return q.cutoff
}

// GetOverdueOutwardStepsQueryResponse represents one batch still at a vendor.
type GetOverdueOutwardStepsQueryResponse struct {
	JobCardID  kernel.UUID
	StepIndex  int
	StepName   string
	VendorName string
	SentDate   time.Time
}
