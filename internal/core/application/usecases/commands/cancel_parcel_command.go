package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCancelParcelCommandIsNotConstructed = errors.New(
		"CancelParcelCommand must be created via NewCancelParcelCommand constructor",
	)
)

// CancelParcelCommand represents a request to cancel a parcel before dispatch.
// Senders may only cancel their own parcels while still requested or approved;
// admins may cancel anything the graph allows.
type CancelParcelCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	parcelID kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

// NewCancelParcelCommand creates a command to cancel a parcel.
func NewCancelParcelCommand(actor user.Actor, parcelID kernel.UUID, note string) (CancelParcelCommand, error) {
	cmd := CancelParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setParcelID(parcelID),
	); err != nil {
		return CancelParcelCommand{}, err
	}

	cmd.actor = actor
	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelParcelCommand) Validate() error {
	return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
}

// Actor returns the verified request identity.
func (c CancelParcelCommand) Actor() user.Actor {
	return c.actor
}

// ParcelID returns the target parcel's identifier.
func (c CancelParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Note returns the optional cancellation note.
func (c CancelParcelCommand) Note() string {
	return c.note
}

func (c *CancelParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}
