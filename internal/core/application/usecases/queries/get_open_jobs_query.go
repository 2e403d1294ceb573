package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrGetOpenJobsQueryIsNotConstructed = errors.New(
		"GetOpenJobsQuery must be created via NewGetOpenJobsQuery constructor",
	)
)

// GetOpenJobsQuery retrieves all unclaimed open job steps across active
// job cards. Shop-floor terminals poll this listing so employees can pick
// up work; a claim through AcceptOpenJob removes the entry.
type GetOpenJobsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenJobsQuery creates a query to retrieve unclaimed open jobs.
// This is a parameterless query scanning every active card.
func NewGetOpenJobsQuery() GetOpenJobsQuery {
	return GetOpenJobsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenJobsQueryIsNotConstructed)
}

// GetOpenJobsQueryResponse represents one claimable open job step.
type GetOpenJobsQueryResponse struct {
	JobCardID kernel.UUID
	OrderID   kernel.UUID
	StepIndex int
	StepName  string
	Quantity  int
}
