package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
)

// StockLedger exposes raw-material availability for batch planning.
// Stock is decremented elsewhere when production starts; the planner only
// reads it to compute shortage warnings.
type StockLedger interface {
	// AvailableStock returns the quantity on hand for each of the given
	// materials. Materials missing from the result have zero stock.
	AvailableStock(ctx context.Context, materialIDs []kernel.UUID) (map[kernel.UUID]float64, error)
}
