package order_test

import (
	"testing"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, name string, orderedQty int) *order.Item {
	t.Helper()

	tmpl, err := jobcard.NewStepTemplate("Turning", jobcard.StepNormal, nil, false)
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), name, orderedQty, 0, nil,
		[]jobcard.StepTemplate{tmpl}, nil)
	require.NoError(t, err)
	return item
}

func mustOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), items)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create valid order in the New stage", func(t *testing.T) {
		item := mustItem(t, "flange", 500)
		o := mustOrder(t, item)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.StageNew, o.Stage())
		assert.Empty(t, o.HoldReason())
		assert.False(t, o.IsOnHold())
		assert.Len(t, o.Items(), 1)
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, kernel.NewUUID(), []*order.Item{mustItem(t, "flange", 10)})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("zero value order should fail validation", func(t *testing.T) {
		var o order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrderItemLookup(t *testing.T) {
	t.Run("should find item by id", func(t *testing.T) {
		item := mustItem(t, "flange", 500)
		o := mustOrder(t, item, mustItem(t, "gasket", 200))

		found, err := o.Item(item.ItemID())

		require.NoError(t, err)
		assert.Equal(t, "flange", found.Name())
	})

	t.Run("should fail for unknown item", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, "flange", 500))

		_, err := o.Item(kernel.NewUUID())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "object not found")
	})
}

func TestOrderPlannedQty(t *testing.T) {
	t.Run("should reserve planned quantity up to the ordered quantity", func(t *testing.T) {
		item := mustItem(t, "flange", 500)
		o := mustOrder(t, item)

		require.NoError(t, o.ReservePlannedQty(item.ItemID(), 300))
		require.NoError(t, o.ReservePlannedQty(item.ItemID(), 200))

		assert.Equal(t, 500, item.PlannedQty())
		assert.Equal(t, 0, item.RemainingQty())
	})

	t.Run("should fail with over allocation when nothing remains", func(t *testing.T) {
		item := mustItem(t, "flange", 500)
		o := mustOrder(t, item)
		require.NoError(t, o.ReservePlannedQty(item.ItemID(), 500))

		err := o.ReservePlannedQty(item.ItemID(), 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOverAllocation)

		var allocErr *order.OverAllocationError
		require.ErrorAs(t, err, &allocErr)
		assert.Equal(t, "flange", allocErr.ItemName)
		assert.Equal(t, 1, allocErr.Requested)
		assert.Equal(t, 0, allocErr.Available)
	})

	t.Run("should release planned quantity back to the pool", func(t *testing.T) {
		item := mustItem(t, "flange", 500)
		o := mustOrder(t, item)
		require.NoError(t, o.ReservePlannedQty(item.ItemID(), 300))

		require.NoError(t, o.ReleasePlannedQty(item.ItemID(), 100))

		assert.Equal(t, 200, item.PlannedQty())
	})

	t.Run("should not plan against a held order", func(t *testing.T) {
		item := mustItem(t, "flange", 500)
		o := mustOrder(t, item)
		require.NoError(t, o.Hold("awaiting customer drawings"))

		err := o.ReservePlannedQty(item.ItemID(), 10)

		assert.ErrorIs(t, err, order.ErrHoldNotAllowed)
	})

	t.Run("should not plan against a cancelled order", func(t *testing.T) {
		item := mustItem(t, "flange", 500)
		o := mustOrder(t, item)
		require.NoError(t, o.SetStage(order.StageCancelled))

		require.Error(t, o.ReservePlannedQty(item.ItemID(), 10))
	})
}

func TestOrderStageTransitions(t *testing.T) {
	t.Run("administrative set should allow jumping anywhere", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, "flange", 500))

		require.NoError(t, o.SetStage(order.StagePacking))
		assert.Equal(t, order.StagePacking, o.Stage())

		require.NoError(t, o.SetStage(order.StageProcessing))
		assert.Equal(t, order.StageProcessing, o.Stage())
	})

	t.Run("administrative set should reject OnHold", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, "flange", 500))

		err := o.SetStage(order.StageOnHold)

		assert.ErrorIs(t, err, order.ErrHoldNotAllowed)
	})

	t.Run("advance should be monotonic", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, "flange", 500))
		require.NoError(t, o.SetStage(order.StageFQC))

		require.NoError(t, o.AdvanceStageTo(order.StageProcessing))
		assert.Equal(t, order.StageFQC, o.Stage())

		require.NoError(t, o.AdvanceStageTo(order.StageDocumentation))
		assert.Equal(t, order.StageDocumentation, o.Stage())
	})
}

func TestOrderHoldResume(t *testing.T) {
	t.Run("hold should record the stage and reason, resume should restore", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, "flange", 500))
		require.NoError(t, o.SetStage(order.StageProcessing))

		require.NoError(t, o.Hold("machine breakdown on line 2"))

		assert.True(t, o.IsOnHold())
		assert.Equal(t, order.StageOnHold, o.Stage())
		assert.Equal(t, "machine breakdown on line 2", o.HoldReason())
		assert.Equal(t, order.StageProcessing, o.ResumeStage())

		require.NoError(t, o.Resume())

		assert.Equal(t, order.StageProcessing, o.Stage())
		assert.Empty(t, o.HoldReason())
	})

	t.Run("hold should require a reason", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, "flange", 500))

		require.Error(t, o.Hold(""))
		assert.False(t, o.IsOnHold())
	})

	t.Run("double hold should fail", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, "flange", 500))
		require.NoError(t, o.Hold("first"))

		assert.ErrorIs(t, o.Hold("second"), order.ErrHoldNotAllowed)
	})

	t.Run("resume without hold should fail", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, "flange", 500))

		assert.ErrorIs(t, o.Resume(), order.ErrHoldNotAllowed)
	})

	t.Run("hold should fail on a completed order", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, "flange", 500))
		require.NoError(t, o.SetStage(order.StageCompleted))

		assert.ErrorIs(t, o.Hold("too late"), order.ErrHoldNotAllowed)
	})

	t.Run("stage change should be rejected while held", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, "flange", 500))
		require.NoError(t, o.Hold("audit"))

		assert.ErrorIs(t, o.SetStage(order.StagePacking), order.ErrHoldNotAllowed)
	})

	t.Run("derived progress while held should raise the resume stage", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, "flange", 500))
		require.NoError(t, o.SetStage(order.StageProcessing))
		require.NoError(t, o.Hold("audit"))

		require.NoError(t, o.AdvanceStageTo(order.StageMFGCompleted))

		assert.Equal(t, order.StageOnHold, o.Stage())
		assert.Equal(t, order.StageMFGCompleted, o.ResumeStage())

		require.NoError(t, o.Resume())
		assert.Equal(t, order.StageMFGCompleted, o.Stage())
	})
}

func TestItem(t *testing.T) {
	t.Run("should require sample count when FQC parameters exist", func(t *testing.T) {
		spec, err := jobcard.NewParameterSpec("diameter", "", jobcard.ValueNumeric, "10", 0.5, 0.5)
		require.NoError(t, err)

		_, err = order.NewItem(kernel.NewUUID(), "flange", 100, 0, nil, nil,
			[]jobcard.ParameterSpec{spec})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sample count")
	})

	t.Run("should fail with zero ordered quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "flange", 0, 0, nil, nil, nil)

		require.Error(t, err)
	})

	t.Run("restore should reject planned beyond ordered", func(t *testing.T) {
		_, err := order.RestoreItem(kernel.NewUUID(), "flange", 100, 150, 0, nil, nil, nil)

		require.Error(t, err)
	})
}

func TestNewRMRequirement(t *testing.T) {
	t.Run("should create valid requirement", func(t *testing.T) {
		req, err := order.NewRMRequirement(kernel.NewUUID(), "EN8 round bar", 1.25)

		require.NoError(t, err)
		assert.Equal(t, "EN8 round bar", req.MaterialName())
		assert.Equal(t, 1.25, req.ConsumptionPerUnit())
	})

	t.Run("should fail with non-positive consumption", func(t *testing.T) {
		_, err := order.NewRMRequirement(kernel.NewUUID(), "EN8 round bar", 0)

		require.Error(t, err)
	})
}
