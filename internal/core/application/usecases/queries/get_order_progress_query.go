package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrGetOrderProgressQueryIsNotConstructed = errors.New(
		"GetOrderProgressQuery must be created via NewGetOrderProgressQuery constructor",
	)
)

// GetOrderProgressQuery retrieves an order's stage together with a
// step-level snapshot of every job card planned for it. Backs the order
// tracking screen.
type GetOrderProgressQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderProgressQuery creates a query for the given order.
func NewGetOrderProgressQuery(orderID kernel.UUID) (GetOrderProgressQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderProgressQuery{}, err
	}

	return GetOrderProgressQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderProgressQueryIsNotConstructed)
}

// OrderID returns the order being tracked.
func (q GetOrderProgressQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StepProgress is one step's execution snapshot.
type StepProgress struct {
	Index     int
	Name      string
	Status    string
	Processed int
	Rejected  int
}

// JobCardProgress is one job card's execution snapshot.
type JobCardProgress struct {
	ID       kernel.UUID
	Status   string
	Quantity int
	ExtraQty int
	Steps    []StepProgress
}

// GetOrderProgressQueryResponse represents an order's overall progress.
type GetOrderProgressQueryResponse struct {
	OrderID kernel.UUID
	Stage   string
	Cards   []JobCardProgress
}
