package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrBlockParcelCommandIsNotConstructed = errors.New(
		"BlockParcelCommand must be created via NewBlockParcelCommand constructor",
	)
)

// BlockParcelCommand represents an admin's request to set or clear the block
// gate on a parcel. Like flag and hold, block toggles append an audit entry.
type BlockParcelCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	parcelID kernel.UUID
	blocked  bool
	note     string

	guard guard.ConstructorGuard
}

// NewBlockParcelCommand creates a command to toggle the block gate.
func NewBlockParcelCommand(actor user.Actor, parcelID kernel.UUID, blocked bool, note string) (BlockParcelCommand, error) {
	cmd := BlockParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setParcelID(parcelID),
	); err != nil {
		return BlockParcelCommand{}, err
	}

	cmd.actor = actor
	cmd.blocked = blocked
	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BlockParcelCommand) Validate() error {
	return c.guard.Validate(ErrBlockParcelCommandIsNotConstructed)
}

// Actor returns the verified request identity.
func (c BlockParcelCommand) Actor() user.Actor {
	return c.actor
}

// ParcelID returns the target parcel's identifier.
func (c BlockParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Blocked returns the desired state of the block gate.
func (c BlockParcelCommand) Blocked() bool {
	return c.blocked
}

// Note returns the optional audit note.
func (c BlockParcelCommand) Note() string {
	return c.note
}

func (c *BlockParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}
