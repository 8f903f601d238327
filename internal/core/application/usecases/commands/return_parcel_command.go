package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrReturnParcelCommandIsNotConstructed = errors.New(
		"ReturnParcelCommand must be created via NewReturnParcelCommand constructor",
	)
)

// ReturnParcelCommand represents an admin's request to mark a dispatched or
// in-transit parcel as returned to the sender. A returned parcel may later
// re-enter the flow via dispatch.
type ReturnParcelCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	parcelID kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

// NewReturnParcelCommand creates a command to return a parcel.
func NewReturnParcelCommand(actor user.Actor, parcelID kernel.UUID, note string) (ReturnParcelCommand, error) {
	cmd := ReturnParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setParcelID(parcelID),
	); err != nil {
		return ReturnParcelCommand{}, err
	}

	cmd.actor = actor
	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnParcelCommand) Validate() error {
	return c.guard.Validate(ErrReturnParcelCommandIsNotConstructed)
}

// Actor returns the verified request identity.
func (c ReturnParcelCommand) Actor() user.Actor {
	return c.actor
}

// ParcelID returns the target parcel's identifier.
func (c ReturnParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Note returns the optional return note.
func (c ReturnParcelCommand) Note() string {
	return c.note
}

func (c *ReturnParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}
