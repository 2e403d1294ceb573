package services

import (
	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// Shortage describes a raw material whose current stock cannot cover a
// planned batch. Shortages are warnings, not errors: planning proceeds
// when the caller explicitly accepts them.
type Shortage struct {
	// MaterialID identifies the material in the stock ledger.
	MaterialID kernel.UUID
	// MaterialName is the material's display name.
	MaterialName string
	// Required is consumptionPerUnit times the full batch size.
	Required float64
	// Available is the stock on hand at planning time.
	Available float64
}

// BatchPlanner is a domain service that turns an order item into a new
// job card: it reserves planned quantity against the item, resolves the
// step sequence from the item's templates (or per-batch overrides), and
// checks raw-material stock.
//
// Business rules:
//   - batch quantity must be positive and fit the item's unplanned
//     remainder; violations fail with OverAllocation
//   - step templates are deep-copied into the card, so later edits to
//     the item master never alter an in-flight batch
//   - when the item defines FQC parameters but the resolved step set has
//     no FQC step, one is synthesized and appended so sampling cannot be
//     skipped by omission
//   - raw-material shortages are reported, never enforced; shop floors
//     routinely proceed under known shortages
//
// Example usage:
//
//	planner := NewBatchPlanner()
//	card, shortages, err := planner.Plan(o, itemID, kernel.NewUUID(), 100, 5, nil, stock)
//	if errors.Is(err, order.ErrOverAllocation) {
//	    // batch does not fit the remaining order quantity
//	    return
//	}
//	if len(shortages) > 0 {
//	    // surface the warnings; the caller decides whether to proceed
//	}
type BatchPlanner struct{}

// NewBatchPlanner creates a new BatchPlanner instance.
func NewBatchPlanner() BatchPlanner {
	return BatchPlanner{}
}

// Plan creates a job card of batchQty (+extraQty buffer) for the given
// order item.
//
// stepOverrides, when non-empty, replace the item's step templates for
// this batch only. stock maps material ids to available quantity and
// feeds the shortage report; a material missing from the map counts as
// zero stock.
//
// On success the item's plannedQty is increased by batchQty (the buffer
// never counts toward the ordered quantity) and the order reflects the
// reservation.
//
// Returns:
//   - *jobcard.JobCard: the new card, steps pending
//   - []Shortage: raw-material warnings, possibly empty
//   - error: OverAllocation, template validation, or order state errors
func (p BatchPlanner) Plan(
	o *order.Order,
	itemID kernel.UUID,
	cardID kernel.UUID,
	batchQty, extraQty int,
	stepOverrides []jobcard.StepTemplate,
	stock map[kernel.UUID]float64,
) (*jobcard.JobCard, []Shortage, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	item, err := o.Item(itemID)
	if err != nil {
		return nil, nil, err
	}

	templates := item.StepTemplates()
	if len(stepOverrides) > 0 {
		templates = make([]jobcard.StepTemplate, len(stepOverrides))
		copy(templates, stepOverrides)
	}
	templates, err = ensureFQCStep(templates, item.FQCParameters())
	if err != nil {
		return nil, nil, err
	}

	steps := make([]*jobcard.Step, 0, len(templates))
	for i, tmpl := range templates {
		step, err := jobcard.NewStepFromTemplate(i, tmpl, item.FQCParameters(), item.SampleCount())
		if err != nil {
			return nil, nil, err
		}
		steps = append(steps, step)
	}

	// Reserve before constructing the card so an invalid card leaves no
	// dangling reservation to unwind.
	if err := o.ReservePlannedQty(itemID, batchQty); err != nil {
		return nil, nil, err
	}

	card, err := jobcard.NewJobCard(cardID, o.ID(), itemID, batchQty, extraQty, steps)
	if err != nil {
		if releaseErr := o.ReleasePlannedQty(itemID, batchQty); releaseErr != nil {
			return nil, nil, releaseErr
		}
		return nil, nil, err
	}

	return card, p.computeShortages(item, batchQty+extraQty, stock), nil
}

// computeShortages reports every raw material whose stock cannot cover
// the full batch size.
func (p BatchPlanner) computeShortages(item *order.Item, totalQty int, stock map[kernel.UUID]float64) []Shortage {
	var shortages []Shortage
	for _, req := range item.RMRequirements() {
		required := req.ConsumptionPerUnit() * float64(totalQty)
		available := stock[req.MaterialID()]
		if required > available {
			shortages = append(shortages, Shortage{
				MaterialID:   req.MaterialID(),
				MaterialName: req.MaterialName(),
				Required:     required,
				Available:    available,
			})
		}
	}
	return shortages
}

// ensureFQCStep appends a synthesized mandatory FQC step when the item
// has FQC parameters but the resolved template set defines no FQC step.
func ensureFQCStep(templates []jobcard.StepTemplate, fqcParams []jobcard.ParameterSpec) ([]jobcard.StepTemplate, error) {
	if len(fqcParams) == 0 {
		return templates, nil
	}
	for _, tmpl := range templates {
		if tmpl.StepType() == jobcard.StepFQC {
			return templates, nil
		}
	}
	fqcTemplate, err := jobcard.NewStepTemplate("Final Quality Check", jobcard.StepFQC, nil, false)
	if err != nil {
		return nil, err
	}
	return append(templates, fqcTemplate), nil
}
