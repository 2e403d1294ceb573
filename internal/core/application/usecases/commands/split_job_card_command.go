package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrSplitJobCardCommandIsNotConstructed = errors.New(
		"SplitJobCardCommand must be created via NewSplitJobCardCommand constructor",
	)
	ErrSplitQtyIsInvalid = errors.New("split quantity must be greater than 0")
)

// SplitJobCardCommand represents a request to carve part of a job card's
// quantity into a new sibling card, used to expedite or rework part of a
// batch independently.
type SplitJobCardCommand struct { //nolint:recvcheck //using for validation
	jobCardID    kernel.UUID
	newJobCardID kernel.UUID
	splitQty     int

	guard guard.ConstructorGuard
}

// NewSplitJobCardCommand creates a command to split splitQty out of the
// given job card into a new card with the given identifier.
func NewSplitJobCardCommand(jobCardID, newJobCardID kernel.UUID, splitQty int) (SplitJobCardCommand, error) {
	command := SplitJobCardCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobCardID(jobCardID),
		command.setNewJobCardID(newJobCardID),
		command.setSplitQty(splitQty),
	); err != nil {
		return SplitJobCardCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitJobCardCommand) Validate() error {
	return c.guard.Validate(ErrSplitJobCardCommandIsNotConstructed)
}

// JobCardID returns the card to split.
func (c SplitJobCardCommand) JobCardID() kernel.UUID {
	return c.jobCardID
}

// NewJobCardID returns the identifier for the sibling card.
func (c SplitJobCardCommand) NewJobCardID() kernel.UUID {
	return c.newJobCardID
}

// SplitQty returns the quantity to move to the sibling.
func (c SplitJobCardCommand) SplitQty() int {
	return c.splitQty
}

func (c *SplitJobCardCommand) setJobCardID(jobCardID kernel.UUID) error {
	if err := jobCardID.Validate(); err != nil {
		return err
	}

	c.jobCardID = jobCardID
	return nil
}

func (c *SplitJobCardCommand) setNewJobCardID(newJobCardID kernel.UUID) error {
	if err := newJobCardID.Validate(); err != nil {
		return err
	}

	c.newJobCardID = newJobCardID
	return nil
}

func (c *SplitJobCardCommand) setSplitQty(splitQty int) error {
	if splitQty <= 0 {
		return ErrSplitQtyIsInvalid
	}

	c.splitQty = splitQty
	return nil
}
