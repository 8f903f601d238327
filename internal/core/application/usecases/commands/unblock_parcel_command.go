package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrUnblockParcelCommandIsNotConstructed = errors.New(
		"UnblockParcelCommand must be created via NewUnblockParcelCommand constructor",
	)
)

// UnblockParcelCommand represents an admin's request to clear all three gates
// (flag, hold, block) at once, restoring normal lifecycle mutation. This is
// the only operation that clears multiple gates in one step.
type UnblockParcelCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	parcelID kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

// NewUnblockParcelCommand creates a command to clear all gates on a parcel.
func NewUnblockParcelCommand(actor user.Actor, parcelID kernel.UUID, note string) (UnblockParcelCommand, error) {
	cmd := UnblockParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setParcelID(parcelID),
	); err != nil {
		return UnblockParcelCommand{}, err
	}

	cmd.actor = actor
	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnblockParcelCommand) Validate() error {
	return c.guard.Validate(ErrUnblockParcelCommandIsNotConstructed)
}

// Actor returns the verified request identity.
func (c UnblockParcelCommand) Actor() user.Actor {
	return c.actor
}

// ParcelID returns the target parcel's identifier.
func (c UnblockParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Note returns the optional audit note.
func (c UnblockParcelCommand) Note() string {
	return c.note
}

func (c *UnblockParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}
