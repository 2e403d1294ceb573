package jobcard

import "production/internal/pkg/errs"

// SubStep is a checklist item within a step. Sub-steps carry no ordering
// constraint among themselves; all of them must be done before the owning
// step can complete.
type SubStep struct {
	name string
	done bool
}

// NewSubStep creates a pending sub-step with the given name.
func NewSubStep(name string) (*SubStep, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("sub-step name")
	}
	return &SubStep{name: name}, nil
}

// RestoreSubStep reconstructs a sub-step from persistent storage.
func RestoreSubStep(name string, done bool) (*SubStep, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("sub-step name")
	}
	return &SubStep{name: name, done: done}, nil
}

// Name returns the checklist item's name.
func (s *SubStep) Name() string {
	return s.name
}

// Done reports whether the checklist item has been completed.
func (s *SubStep) Done() bool {
	return s.done
}

// Toggle flips the sub-step between done and pending. The flip is pure and
// idempotent-safe: toggling twice restores the original state, and there is
// no ordering constraint among sub-steps.
func (s *SubStep) Toggle() {
	s.done = !s.done
}

// copySubStep returns a fresh pending copy of the sub-step, used when a job
// card is split and the sibling starts from scratch.
func (s *SubStep) copySubStep() *SubStep {
	return &SubStep{name: s.name}
}
