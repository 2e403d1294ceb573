package queries

import (
	"context"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOverdueOutwardStepsQueryHandler retrieves dispatched-but-unreturned
// outward steps from the database. Uses direct SQL for optimal read
// performance in the CQRS pattern.
type GetOverdueOutwardStepsQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueOutwardStepsQueryHandler creates a handler for overdue
// outward step queries. Requires a GORM database connection.
func NewGetOverdueOutwardStepsQueryHandler(db *gorm.DB) GetOverdueOutwardStepsQueryHandler {
	return GetOverdueOutwardStepsQueryHandler{db: db}
}

// Handle executes the query, listing outward steps sent before the
// cutoff with no return recorded, oldest dispatch first.
func (h GetOverdueOutwardStepsQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueOutwardStepsQuery,
) ([]GetOverdueOutwardStepsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	steps := make([]GetOverdueOutwardStepsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.job_card_id,
			s.step_index,
			s.name,
			s.vendor_name,
			s.sent_date
		FROM steps s
		WHERE s.step_type = ?
		  AND s.sent_date IS NOT NULL
		  AND s.return_date IS NULL
		  AND s.sent_date < ?
		ORDER BY s.sent_date
	`, int(jobcard.StepOutward), query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var step GetOverdueOutwardStepsQueryResponse
		var cardID uuid.UUID

		err = rows.Scan(
			&cardID,
			&step.StepIndex,
			&step.StepName,
			&step.VendorName,
			&step.SentDate,
		)
		if err != nil {
			return nil, err
		}

		jobCardID, idErr := kernel.UUIDFromBytes(cardID[:])
		if idErr != nil {
			return nil, idErr
		}
		step.JobCardID = jobCardID

		steps = append(steps, step)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return steps, nil
}
