package order_test

import (
	"testing"

	"production/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageFromString(t *testing.T) {
	t.Run("should parse every pipeline stage case-insensitively", func(t *testing.T) {
		for input, want := range map[string]order.Stage{
			"New":           order.StageNew,
			"mapped":        order.StageMapped,
			"ASSIGNED":      order.StageAssigned,
			"Processing":    order.StageProcessing,
			"MFGCompleted":  order.StageMFGCompleted,
			"fqc":           order.StageFQC,
			"Documentation": order.StageDocumentation,
			"Packing":       order.StagePacking,
			"Dispatch":      order.StageDispatch,
			"Completed":     order.StageCompleted,
			"OnHold":        order.StageOnHold,
			"Cancelled":     order.StageCancelled,
		} {
			got, err := order.StageFromString(input)
			require.NoError(t, err, input)
			assert.Equal(t, want, got, input)
		}
	})

	t.Run("should fail on unknown stage name", func(t *testing.T) {
		_, err := order.StageFromString("Shipped")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "stage is invalid")
	})
}

func TestStageOrdering(t *testing.T) {
	t.Run("pipeline stages should order by pipeline position", func(t *testing.T) {
		assert.True(t, order.StageNew.Before(order.StageMapped))
		assert.True(t, order.StageProcessing.Before(order.StageFQC))
		assert.True(t, order.StageDispatch.Before(order.StageCompleted))
		assert.False(t, order.StageFQC.Before(order.StageProcessing))
		assert.False(t, order.StageNew.Before(order.StageNew))
	})

	t.Run("side states should never be ordered", func(t *testing.T) {
		assert.False(t, order.StageOnHold.Before(order.StageCompleted))
		assert.False(t, order.StageNew.Before(order.StageOnHold))
		assert.False(t, order.StageCancelled.Before(order.StageCompleted))
	})
}

func TestStagePredicates(t *testing.T) {
	t.Run("terminal stages", func(t *testing.T) {
		assert.True(t, order.StageCompleted.IsTerminal())
		assert.True(t, order.StageCancelled.IsTerminal())
		assert.False(t, order.StageProcessing.IsTerminal())
		assert.False(t, order.StageOnHold.IsTerminal())
	})

	t.Run("holdable stages", func(t *testing.T) {
		assert.True(t, order.StageNew.CanHold())
		assert.True(t, order.StageProcessing.CanHold())
		assert.True(t, order.StageDispatch.CanHold())
		assert.False(t, order.StageCompleted.CanHold())
		assert.False(t, order.StageCancelled.CanHold())
		assert.False(t, order.StageOnHold.CanHold())
	})

	t.Run("unknown stage should fail validation", func(t *testing.T) {
		var stage order.Stage

		require.Error(t, stage.Validate())
		assert.Equal(t, "Unknown", stage.String())
	})
}
