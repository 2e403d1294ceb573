package queries

import (
	"context"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenJobsQueryHandler retrieves unclaimed open job steps from the
// database. Uses direct SQL for optimal read performance in the CQRS
// pattern; the listing is advisory and the claim itself is arbitrated by
// the repository's conditional update.
type GetOpenJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenJobsQueryHandler creates a handler for open job queries.
// Requires a GORM database connection for query execution.
func NewGetOpenJobsQueryHandler(db *gorm.DB) GetOpenJobsQueryHandler {
	return GetOpenJobsQueryHandler{db: db}
}

// Handle executes the query to retrieve all claimable open jobs.
// A step is claimable while it is flagged open, still pending, and its
// assignment set is empty. Results are sorted by card then step order.
func (h GetOpenJobsQueryHandler) Handle(
	ctx context.Context,
	query GetOpenJobsQuery,
) ([]GetOpenJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]GetOpenJobsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.job_card_id,
			jc.order_id,
			s.step_index,
			s.name,
			jc.quantity
		FROM steps s
		JOIN job_cards jc ON jc.id = s.job_card_id
		WHERE s.is_open_job
		  AND s.status = ?
		  AND cardinality(s.assignees) = 0
		ORDER BY s.job_card_id, s.step_index
	`, jobcard.StepPending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var job GetOpenJobsQueryResponse
		var cardID, orderID uuid.UUID

		err = rows.Scan(
			&cardID,
			&orderID,
			&job.StepIndex,
			&job.StepName,
			&job.Quantity,
		)
		if err != nil {
			return nil, err
		}

		jobCardID, idErr := kernel.UUIDFromBytes(cardID[:])
		if idErr != nil {
			return nil, idErr
		}
		job.JobCardID = jobCardID

		ownerID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		job.OrderID = ownerID

		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
