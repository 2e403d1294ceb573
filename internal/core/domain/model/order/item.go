package order

import (
	"fmt"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// RMRequirement is the raw-material consumption of one order item: how
// much of a material each produced unit uses. Stock availability is
// checked against it at planning time.
type RMRequirement struct {
	materialID         kernel.UUID
	materialName       string
	consumptionPerUnit float64
}

// NewRMRequirement creates a raw-material requirement.
func NewRMRequirement(materialID kernel.UUID, materialName string, consumptionPerUnit float64) (RMRequirement, error) {
	if err := materialID.Validate(); err != nil {
		return RMRequirement{}, err
	}
	if materialName == "" {
		return RMRequirement{}, errs.NewValueIsRequiredError("material name")
	}
	if consumptionPerUnit <= 0 {
		return RMRequirement{}, errs.NewValueIsInvalidErrorWithCause(
			"consumption per unit is invalid",
			fmt.Errorf("%v is not greater than 0", consumptionPerUnit))
	}
	return RMRequirement{
		materialID:         materialID,
		materialName:       materialName,
		consumptionPerUnit: consumptionPerUnit,
	}, nil
}

// MaterialID returns the material's identifier in the stock ledger.
func (r RMRequirement) MaterialID() kernel.UUID { return r.materialID }

// MaterialName returns the material's display name.
func (r RMRequirement) MaterialName() string { return r.materialName }

// ConsumptionPerUnit returns how much material one produced unit uses.
func (r RMRequirement) ConsumptionPerUnit() float64 { return r.consumptionPerUnit }

// Item is one line of a sales order: the product to manufacture, its
// quantities, and the manufacturing master data (step templates, FQC
// parameter specs, raw-material requirements) that batches are planned
// from.
//
// Invariant: plannedQty never exceeds orderedQty. Planned quantity moves
// only through ReservePlannedQty and ReleasePlannedQty so the invariant
// is checked on every change.
type Item struct {
	itemID         kernel.UUID
	name           string
	orderedQty     int
	plannedQty     int
	sampleCount    int
	rmRequirements []RMRequirement
	stepTemplates  []jobcard.StepTemplate
	fqcParameters  []jobcard.ParameterSpec
	guard          kernel.ConstructorGuard
}

// NewItem creates an order item with no planned quantity.
//
// sampleCount is the number of FQC sample slots per parameter; it must be
// positive when the item carries FQC parameters.
func NewItem(
	itemID kernel.UUID,
	name string,
	orderedQty int,
	sampleCount int,
	rmRequirements []RMRequirement,
	stepTemplates []jobcard.StepTemplate,
	fqcParameters []jobcard.ParameterSpec,
) (*Item, error) {
	return RestoreItem(itemID, name, orderedQty, 0, sampleCount, rmRequirements, stepTemplates, fqcParameters)
}

// RestoreItem reconstructs an order item from persistent storage.
func RestoreItem(
	itemID kernel.UUID,
	name string,
	orderedQty, plannedQty int,
	sampleCount int,
	rmRequirements []RMRequirement,
	stepTemplates []jobcard.StepTemplate,
	fqcParameters []jobcard.ParameterSpec,
) (*Item, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("item name")
	}
	if orderedQty <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"ordered quantity is invalid", fmt.Errorf("%d is not greater than 0", orderedQty))
	}
	if plannedQty < 0 || plannedQty > orderedQty {
		return nil, errs.NewValueIsOutOfRangeError("planned quantity", plannedQty, 0, orderedQty)
	}
	if len(fqcParameters) > 0 && sampleCount <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"sample count is invalid",
			fmt.Errorf("%d is not greater than 0 for an item with FQC parameters", sampleCount))
	}

	requirements := make([]RMRequirement, len(rmRequirements))
	copy(requirements, rmRequirements)
	templates := make([]jobcard.StepTemplate, len(stepTemplates))
	copy(templates, stepTemplates)
	params := make([]jobcard.ParameterSpec, len(fqcParameters))
	copy(params, fqcParameters)

	return &Item{
		itemID:         itemID,
		name:           name,
		orderedQty:     orderedQty,
		plannedQty:     plannedQty,
		sampleCount:    sampleCount,
		rmRequirements: requirements,
		stepTemplates:  templates,
		fqcParameters:  params,
		guard:          kernel.NewConstructorGuard(),
	}, nil
}

// ItemID returns the item's identifier.
func (i *Item) ItemID() kernel.UUID { return i.itemID }

// Name returns the item's display name.
func (i *Item) Name() string { return i.name }

// OrderedQty returns the quantity the customer ordered.
func (i *Item) OrderedQty() int { return i.orderedQty }

// PlannedQty returns the quantity already planned into job cards.
func (i *Item) PlannedQty() int { return i.plannedQty }

// RemainingQty returns the quantity not yet planned into any batch.
func (i *Item) RemainingQty() int { return i.orderedQty - i.plannedQty }

// SampleCount returns the number of FQC sample slots per parameter.
func (i *Item) SampleCount() int { return i.sampleCount }

// RMRequirements returns a copy of the item's raw-material requirements.
func (i *Item) RMRequirements() []RMRequirement {
	out := make([]RMRequirement, len(i.rmRequirements))
	copy(out, i.rmRequirements)
	return out
}

// StepTemplates returns a copy of the item's manufacturing step templates.
func (i *Item) StepTemplates() []jobcard.StepTemplate {
	out := make([]jobcard.StepTemplate, len(i.stepTemplates))
	copy(out, i.stepTemplates)
	return out
}

// FQCParameters returns a copy of the item's FQC parameter specs.
func (i *Item) FQCParameters() []jobcard.ParameterSpec {
	out := make([]jobcard.ParameterSpec, len(i.fqcParameters))
	copy(out, i.fqcParameters)
	return out
}

// ReservePlannedQty commits qty units to a planned batch. It fails with
// OverAllocationError when qty is not positive or less than qty remains
// unplanned, leaving the item unchanged.
func (i *Item) ReservePlannedQty(qty int) error {
	if qty <= 0 || qty > i.RemainingQty() {
		return NewOverAllocationError(i.name, qty, i.RemainingQty())
	}
	i.plannedQty += qty
	return nil
}

// ReleasePlannedQty gives qty units back to the unplanned pool, used when
// a planned batch is discarded before production starts.
func (i *Item) ReleasePlannedQty(qty int) error {
	if qty <= 0 || qty > i.plannedQty {
		return errs.NewValueIsOutOfRangeError("release quantity", qty, 1, i.plannedQty)
	}
	i.plannedQty -= qty
	return nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}
