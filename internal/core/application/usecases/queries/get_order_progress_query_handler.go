package queries

import (
	"context"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderProgressQueryHandler assembles the order tracking read model:
// the order's stage plus a per-card, per-step execution snapshot.
type GetOrderProgressQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderProgressQueryHandler creates a handler for order progress
// queries. Requires a GORM database connection for query execution.
func NewGetOrderProgressQueryHandler(db *gorm.DB) GetOrderProgressQueryHandler {
	return GetOrderProgressQueryHandler{db: db}
}

// Handle executes the query for the given order.
// Returns ObjectNotFound when the order does not exist.
func (h GetOrderProgressQueryHandler) Handle(
	ctx context.Context,
	query GetOrderProgressQuery,
) (GetOrderProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	response := GetOrderProgressQueryResponse{
		OrderID: query.OrderID(),
		Cards:   make([]JobCardProgress, 0),
	}

	var stage int
	row := h.db.WithContext(ctx).Raw(`
		SELECT stage FROM orders WHERE id = ?
	`, query.OrderID().String()).Row()
	if err := row.Scan(&stage); err != nil {
		return GetOrderProgressQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	response.Stage = order.Stage(stage).String()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			jc.id,
			jc.status,
			jc.quantity,
			jc.extra_qty,
			s.step_index,
			s.name,
			s.status,
			s.processed,
			s.rejected
		FROM job_cards jc
		JOIN steps s ON s.job_card_id = jc.id
		WHERE jc.order_id = ?
		ORDER BY jc.id, s.step_index
	`, query.OrderID().String()).Rows()
	if err != nil {
		return GetOrderProgressQueryResponse{}, err
	}
	defer rows.Close()

	var current *JobCardProgress
	for rows.Next() {
		var cardID uuid.UUID
		var cardStatus, stepStatus int
		var quantity, extraQty int
		var step StepProgress

		err = rows.Scan(
			&cardID,
			&cardStatus,
			&quantity,
			&extraQty,
			&step.Index,
			&step.Name,
			&stepStatus,
			&step.Processed,
			&step.Rejected,
		)
		if err != nil {
			return GetOrderProgressQueryResponse{}, err
		}

		id, idErr := kernel.UUIDFromBytes(cardID[:])
		if idErr != nil {
			return GetOrderProgressQueryResponse{}, idErr
		}

		if current == nil || current.ID != id {
			response.Cards = append(response.Cards, JobCardProgress{
				ID:       id,
				Status:   jobcard.Status(cardStatus).String(),
				Quantity: quantity,
				ExtraQty: extraQty,
				Steps:    make([]StepProgress, 0),
			})
			current = &response.Cards[len(response.Cards)-1]
		}

		step.Status = jobcard.StepStatus(stepStatus).String()
		current.Steps = append(current.Steps, step)
	}

	if err = rows.Err(); err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	return response, nil
}
