package commands

import (
	"context"
	"fmt"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/ports"
)

// SubmitFQCCommandHandler records FQC sample readings and completes the
// quality check step with the confirmed disposition.
//
// Readings are written onto the card in memory first; any precondition
// failure (empty slot, missing remark, unjudgeable reading, quantity
// violation, confirmation mismatch) aborts before the transaction
// commits, so a rejected submission persists nothing.
type SubmitFQCCommandHandler struct {
	uowFactory JobCardUoWFactory
	notifier   ports.Notifier
}

// NewSubmitFQCCommandHandler creates a handler for FQC submissions.
func NewSubmitFQCCommandHandler(uowFactory JobCardUoWFactory, notifier ports.Notifier) SubmitFQCCommandHandler {
	return SubmitFQCCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the FQC submission.
func (h SubmitFQCCommandHandler) Handle(ctx context.Context, command SubmitFQCCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobCardRepo := uow.JobCardRepository()

	card, err := jobCardRepo.Get(ctx, command.JobCardID())
	if err != nil {
		return err
	}

	step, err := card.Step(command.StepIndex())
	if err != nil {
		return err
	}

	if err = applyReadings(step, command.Readings()); err != nil {
		return err
	}

	if err = card.SubmitFQC(
		command.StepIndex(),
		command.Processed(), command.Rejected(),
		command.Confirmed(),
	); err != nil {
		return err
	}

	if err = jobCardRepo.Update(ctx, card); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Publish(ctx, ports.Notification{
		Kind:    "fqc_submitted",
		Subject: card.ID().String(),
		Message: fmt.Sprintf("FQC %s for job card %s", command.Confirmed(), card.ID()),
	})

	return nil
}

// applyReadings writes the inspector's samples and remarks onto the
// step's parameters, matched by parameter name.
func applyReadings(step *jobcard.Step, readings []ParameterReading) error {
	params := make(map[string]*jobcard.Parameter, len(step.FQCParameters()))
	for _, param := range step.FQCParameters() {
		params[param.Spec().Name()] = param
	}

	for _, reading := range readings {
		param, ok := params[reading.Name]
		if !ok {
			return jobcard.NewValidationError(reading.Name, "unknown FQC parameter")
		}
		for slot, sample := range reading.Samples {
			if err := param.SetSample(slot, sample); err != nil {
				return err
			}
		}
		param.SetRemarks(reading.Remarks)
	}
	return nil
}
