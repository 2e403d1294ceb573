package services

import (
	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/order"
)

// StageCalculator derives an order's coarse stage from the state of its
// job cards. Derivation is a pure fold over current step statuses with no
// side effects; callers apply the result through Order.AdvanceStageTo so
// a recompute never regresses the stored stage.
//
// The derived stage never exceeds the least-advanced job card, and caps
// at FQC: Documentation, Packing, Dispatch and Completed are
// administrative stages that only a manual stage-set reaches.
type StageCalculator struct{}

// NewStageCalculator creates a new StageCalculator instance.
func NewStageCalculator() StageCalculator {
	return StageCalculator{}
}

// Derive computes the stage implied by the given job cards:
//
//   - no cards planned yet: New
//   - cards exist with no assignments: Mapped
//   - any step assigned, nothing started: Assigned
//   - work started, manufacturing unfinished on some card: Processing
//   - every non-FQC step completed on every card: MFGCompleted
//   - manufacturing done everywhere and any FQC step started: FQC
//
// FQC underway on one card while a sibling card still has manufacturing
// left derives Processing, not FQC, so the order never reads as more
// advanced than its least-advanced card.
func (c StageCalculator) Derive(cards []*jobcard.JobCard) order.Stage {
	if len(cards) == 0 {
		return order.StageNew
	}

	assigned := false
	started := false
	fqcStarted := false
	mfgDone := true
	for _, card := range cards {
		if card.HasAssignments() {
			assigned = true
		}
		if card.HasStarted() {
			started = true
		}
		if card.FQCStarted() {
			fqcStarted = true
		}
		if !card.ManufacturingComplete() {
			mfgDone = false
		}
	}

	switch {
	case fqcStarted && mfgDone:
		return order.StageFQC
	case mfgDone:
		return order.StageMFGCompleted
	case started:
		return order.StageProcessing
	case assigned:
		return order.StageAssigned
	default:
		return order.StageMapped
	}
}
