package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrRecordOutwardSentCommandIsNotConstructed = errors.New(
	"RecordOutwardSentCommand must be created via NewRecordOutwardSentCommand constructor",
)

// RecordOutwardSentCommand marks an outward step's batch as dispatched to
// an external vendor.
type RecordOutwardSentCommand struct { //nolint:recvcheck //using for validation
	jobCardID  kernel.UUID
	stepIndex  int
	vendorName string
	sentDate   time.Time

	guard guard.ConstructorGuard
}

// NewRecordOutwardSentCommand creates a command to record the dispatch.
func NewRecordOutwardSentCommand(
	jobCardID kernel.UUID,
	stepIndex int,
	vendorName string,
	sentDate time.Time,
) (RecordOutwardSentCommand, error) {
	command := RecordOutwardSentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobCardID(jobCardID),
		command.setStepIndex(stepIndex),
		command.setVendorName(vendorName),
		command.setSentDate(sentDate),
	); err != nil {
		return RecordOutwardSentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordOutwardSentCommand) Validate() error {
	return c.guard.Validate(ErrRecordOutwardSentCommandIsNotConstructed)
}

// JobCardID returns the card holding the outward step.
func (c RecordOutwardSentCommand) JobCardID() kernel.UUID {
	return c.jobCardID
}

// StepIndex returns the position of the outward step.
func (c RecordOutwardSentCommand) StepIndex() int {
	return c.stepIndex
}

// VendorName returns the external vendor the batch went to.
func (c RecordOutwardSentCommand) VendorName() string {
	return c.vendorName
}

// SentDate returns when the batch left the shop.
func (c RecordOutwardSentCommand) SentDate() time.Time {
	return c.sentDate
}

func (c *RecordOutwardSentCommand) setJobCardID(jobCardID kernel.UUID) error {
	if err := jobCardID.Validate(); err != nil {
		return err
	}

	c.jobCardID = jobCardID
	return nil
}

func (c *RecordOutwardSentCommand) setStepIndex(stepIndex int) error {
	if stepIndex < 0 {
		return ErrStepIndexIsInvalid
	}

	c.stepIndex = stepIndex
	return nil
}

func (c *RecordOutwardSentCommand) setVendorName(vendorName string) error {
	if vendorName == "" {
		return errs.NewValueIsRequiredError("vendorName")
	}

	c.vendorName = vendorName
	return nil
}

func (c *RecordOutwardSentCommand) setSentDate(sentDate time.Time) error {
	if sentDate.IsZero() {
		return errs.NewValueIsRequiredError("sentDate")
	}

	c.sentDate = sentDate
	return nil
}
