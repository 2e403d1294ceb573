package jobcard

import "production/internal/pkg/errs"

// StepTemplate is the master definition of a manufacturing step on an order
// item. The batch planner clones templates into job card steps; templates
// themselves are never executed, and a clone is always a structural deep
// copy so later edits to the item master cannot mutate in-flight batches.
type StepTemplate struct {
	name         string
	stepType     StepType
	subStepNames []string
	isOpenJob    bool
}

// NewStepTemplate creates a step template.
//
// Parameters:
//   - name: the step's display name (required)
//   - stepType: Normal, FQC or Outward
//   - subStepNames: ordered checklist items cloned into each step
//   - isOpenJob: when true, cloned steps start unassigned and claimable by
//     any employee
func NewStepTemplate(name string, stepType StepType, subStepNames []string, isOpenJob bool) (StepTemplate, error) {
	if name == "" {
		return StepTemplate{}, errs.NewValueIsRequiredError("step template name")
	}
	if err := stepType.Validate(); err != nil {
		return StepTemplate{}, err
	}
	for _, sub := range subStepNames {
		if sub == "" {
			return StepTemplate{}, errs.NewValueIsRequiredError("sub-step name")
		}
	}

	names := make([]string, len(subStepNames))
	copy(names, subStepNames)
	return StepTemplate{name: name, stepType: stepType, subStepNames: names, isOpenJob: isOpenJob}, nil
}

// Name returns the step's display name.
func (t StepTemplate) Name() string { return t.name }

// StepType returns the step's execution classification.
func (t StepTemplate) StepType() StepType { return t.stepType }

// SubStepNames returns a copy of the ordered checklist item names.
func (t StepTemplate) SubStepNames() []string {
	out := make([]string, len(t.subStepNames))
	copy(out, t.subStepNames)
	return out
}

// IsOpenJob reports whether cloned steps start unassigned and claimable.
func (t StepTemplate) IsOpenJob() bool { return t.isOpenJob }
