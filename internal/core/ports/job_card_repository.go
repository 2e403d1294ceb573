// Package ports defines repository interfaces for the production domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
)

// JobCardRepository defines the persistence contract for job card aggregates.
// Provides methods for storing, retrieving, and querying job cards with their
// complete step state.
type JobCardRepository interface {
	// Add persists a new job card aggregate to storage.
	// The card must be valid and not already exist in the repository.
	Add(ctx context.Context, card *jobcard.JobCard) error

	// Update persists changes to an existing job card aggregate.
	// The card must exist in the repository and be valid.
	Update(ctx context.Context, card *jobcard.JobCard) error

	// Get retrieves a job card aggregate by its unique identifier.
	// Returns the complete card with all steps, checklists, quantities,
	// and FQC samples.
	Get(ctx context.Context, id kernel.UUID) (*jobcard.JobCard, error)

	// GetAllForOrder retrieves every job card planned for the given order,
	// in planning order. Used by stage derivation and progress views.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*jobcard.JobCard, error)

	// ClaimStep atomically assigns an open job step to the given employee.
	//
	// The claim is a single conditional update keyed on the step still
	// being flagged open with an empty assignment set, so exactly one of
	// two concurrent claimers wins. The loser receives
	// jobcard.AlreadyClaimedError, never a double assignment.
	//
	// The in-memory jobcard.JobCard.Claim check runs first for fast
	// rejection; this method is the authoritative arbiter.
	ClaimStep(ctx context.Context, cardID kernel.UUID, stepIndex int, employeeID kernel.UUID) error
}
