package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrFlagParcelCommandIsNotConstructed = errors.New(
		"FlagParcelCommand must be created via NewFlagParcelCommand constructor",
	)
)

// FlagParcelCommand represents an admin's request to set or clear the flag
// gate on a parcel. Gate toggles are orthogonal to the transition graph and
// always leave an audit entry.
type FlagParcelCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	parcelID kernel.UUID
	flagged  bool
	note     string

	guard guard.ConstructorGuard
}

// NewFlagParcelCommand creates a command to toggle the flag gate.
func NewFlagParcelCommand(actor user.Actor, parcelID kernel.UUID, flagged bool, note string) (FlagParcelCommand, error) {
	cmd := FlagParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setParcelID(parcelID),
	); err != nil {
		return FlagParcelCommand{}, err
	}

	cmd.actor = actor
	cmd.flagged = flagged
	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FlagParcelCommand) Validate() error {
	return c.guard.Validate(ErrFlagParcelCommandIsNotConstructed)
}

// Actor returns the verified request identity.
func (c FlagParcelCommand) Actor() user.Actor {
	return c.actor
}

// ParcelID returns the target parcel's identifier.
func (c FlagParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Flagged returns the desired state of the flag gate.
func (c FlagParcelCommand) Flagged() bool {
	return c.flagged
}

// Note returns the optional audit note.
func (c FlagParcelCommand) Note() string {
	return c.note
}

func (c *FlagParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}
