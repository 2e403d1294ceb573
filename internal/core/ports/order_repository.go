package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// with their items and stage state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with all items and their planning state.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInFlight retrieves all orders that are neither completed nor
	// cancelled, including held orders. Used by dashboards and the stage
	// recompute job.
	GetAllInFlight(ctx context.Context) ([]*order.Order, error)
}
