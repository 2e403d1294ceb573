package commands_test

import (
	"testing"

	"production/internal/core/domain/model/employee"
	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func activeEmployee(t *testing.T) *employee.Employee {
	t.Helper()
	w, err := employee.NewEmployee(kernel.NewUUID(), "Asha", "operator", employee.Active)
	require.NoError(t, err)
	return w
}

func onLeaveEmployee(t *testing.T) *employee.Employee {
	t.Helper()
	w, err := employee.NewEmployee(kernel.NewUUID(), "Ravi", "operator", employee.OnLeave)
	require.NoError(t, err)
	return w
}

// openJobCard builds a card whose single step is an unclaimed open job.
func openJobCard(t *testing.T) *jobcard.JobCard {
	t.Helper()
	tmpl, err := jobcard.NewStepTemplate("Turning", jobcard.StepNormal, nil, true)
	require.NoError(t, err)
	step, err := jobcard.NewStepFromTemplate(0, tmpl, nil, 0)
	require.NoError(t, err)
	card, err := jobcard.NewJobCard(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 50, 0, []*jobcard.Step{step})
	require.NoError(t, err)
	return card
}

// orderWithItem builds an order holding one item with a turning step and
// the given raw-material requirements.
func orderWithItem(t *testing.T, itemID kernel.UUID, requirements []order.RMRequirement) *order.Order {
	t.Helper()
	tmpl, err := jobcard.NewStepTemplate("Turning", jobcard.StepNormal, nil, false)
	require.NoError(t, err)
	item, err := order.NewItem(itemID, "Flange 80mm", 500, 0,
		requirements, []jobcard.StepTemplate{tmpl}, nil)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []*order.Item{item})
	require.NoError(t, err)
	return o
}
