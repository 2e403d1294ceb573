package services_test

import (
	"testing"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planCard builds a Turning -> Final QC card straight from the planner.
func planCard(t *testing.T) (*jobcard.JobCard, kernel.UUID) {
	t.Helper()

	spec, err := jobcard.NewParameterSpec("diameter", "", jobcard.ValueNumeric, "10", 0.5, 0.5)
	require.NoError(t, err)
	templates := []jobcard.StepTemplate{mustTemplate(t, "Turning", jobcard.StepNormal)}
	o, itemID := newTestOrder(t, 500, nil, templates, []jobcard.ParameterSpec{spec}, 2)

	card, _, err := services.NewBatchPlanner().Plan(o, itemID, kernel.NewUUID(), 100, 0, nil, nil)
	require.NoError(t, err)

	employee := kernel.NewUUID()
	for _, step := range card.Steps() {
		require.NoError(t, step.AssignEmployee(employee))
	}
	return card, employee
}

func TestStageCalculatorDerive(t *testing.T) {
	calc := services.NewStageCalculator()

	t.Run("no job cards should derive New", func(t *testing.T) {
		assert.Equal(t, order.StageNew, calc.Derive(nil))
	})

	t.Run("unassigned cards should derive Mapped", func(t *testing.T) {
		spec, err := jobcard.NewParameterSpec("diameter", "", jobcard.ValueNumeric, "10", 0.5, 0.5)
		require.NoError(t, err)
		templates := []jobcard.StepTemplate{mustTemplate(t, "Turning", jobcard.StepNormal)}
		o, itemID := newTestOrder(t, 500, nil, templates, []jobcard.ParameterSpec{spec}, 2)
		card, _, err := services.NewBatchPlanner().Plan(o, itemID, kernel.NewUUID(), 100, 0, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, order.StageMapped, calc.Derive([]*jobcard.JobCard{card}))
	})

	t.Run("assigned but unstarted cards should derive Assigned", func(t *testing.T) {
		card, _ := planCard(t)

		assert.Equal(t, order.StageAssigned, calc.Derive([]*jobcard.JobCard{card}))
	})

	t.Run("in-flight manufacturing should derive Processing", func(t *testing.T) {
		card, employee := planCard(t)
		require.NoError(t, card.StartStep(0, employee))

		assert.Equal(t, order.StageProcessing, calc.Derive([]*jobcard.JobCard{card}))
	})

	t.Run("all manufacturing steps done should derive MFGCompleted", func(t *testing.T) {
		card, employee := planCard(t)
		require.NoError(t, card.StartStep(0, employee))
		require.NoError(t, card.CompleteStep(0, 95, 5, "", employee))

		assert.Equal(t, order.StageMFGCompleted, calc.Derive([]*jobcard.JobCard{card}))
	})

	t.Run("submitted FQC should derive FQC and cap there", func(t *testing.T) {
		card, employee := planCard(t)
		require.NoError(t, card.StartStep(0, employee))
		require.NoError(t, card.CompleteStep(0, 95, 5, "", employee))

		step, err := card.Step(1)
		require.NoError(t, err)
		param := step.FQCParameters()[0]
		require.NoError(t, param.SetSample(0, "10.1"))
		require.NoError(t, param.SetSample(1, "9.9"))
		param.SetRemarks("within drawing limits")
		require.NoError(t, card.SubmitFQC(1, 95, 0, jobcard.Passed))
		require.Equal(t, jobcard.Completed, card.Status())

		assert.Equal(t, order.StageFQC, calc.Derive([]*jobcard.JobCard{card}))
	})

	t.Run("least-advanced card should bound the derived stage", func(t *testing.T) {
		done, employee := planCard(t)
		require.NoError(t, done.StartStep(0, employee))
		require.NoError(t, done.CompleteStep(0, 100, 0, "", employee))

		fresh, _ := planCard(t)

		assert.Equal(t, order.StageProcessing,
			calc.Derive([]*jobcard.JobCard{done, fresh}))
	})

	t.Run("FQC on one card should not outrun an unstarted sibling", func(t *testing.T) {
		inspected, employee := planCard(t)
		require.NoError(t, inspected.StartStep(0, employee))
		require.NoError(t, inspected.CompleteStep(0, 100, 0, "", employee))

		step, err := inspected.Step(1)
		require.NoError(t, err)
		param := step.FQCParameters()[0]
		require.NoError(t, param.SetSample(0, "10.1"))
		require.NoError(t, param.SetSample(1, "9.9"))
		param.SetRemarks("within drawing limits")
		require.NoError(t, inspected.SubmitFQC(1, 100, 0, jobcard.Passed))

		fresh, _ := planCard(t)

		assert.Equal(t, order.StageProcessing,
			calc.Derive([]*jobcard.JobCard{inspected, fresh}))
	})

	t.Run("recompute should never regress the stored stage", func(t *testing.T) {
		o, _ := newTestOrder(t, 500, nil,
			[]jobcard.StepTemplate{mustTemplate(t, "Turning", jobcard.StepNormal)}, nil, 0)
		require.NoError(t, o.SetStage(order.StagePacking))

		derived := calc.Derive(nil)
		require.NoError(t, o.AdvanceStageTo(derived))

		assert.Equal(t, order.StagePacking, o.Stage())
	})
}
