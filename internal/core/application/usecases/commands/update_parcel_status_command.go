package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
		"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
	)
)

// UpdateParcelStatusCommand represents a request to move a parcel to an
// arbitrary target status. This is the single admin chokepoint for status
// mutation; cancel and confirm-delivery are constrained variants of the same
// path.
type UpdateParcelStatusCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	parcelID kernel.UUID
	target   parcel.Status
	location string
	note     string

	guard guard.ConstructorGuard
}

// NewUpdateParcelStatusCommand creates a command to change a parcel's status.
// Returns an error if any identifier or the target status is invalid.
func NewUpdateParcelStatusCommand(
	actor user.Actor, parcelID kernel.UUID, target parcel.Status, location, note string,
) (UpdateParcelStatusCommand, error) {
	cmd := UpdateParcelStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setParcelID(parcelID),
		cmd.setTarget(target),
	); err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	cmd.actor = actor
	cmd.location = location
	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

// Actor returns the verified request identity.
func (c UpdateParcelStatusCommand) Actor() user.Actor {
	return c.actor
}

// ParcelID returns the target parcel's identifier.
func (c UpdateParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Target returns the requested destination status.
func (c UpdateParcelStatusCommand) Target() parcel.Status {
	return c.target
}

// Location returns the optional location to record on the log entry.
func (c UpdateParcelStatusCommand) Location() string {
	return c.location
}

// Note returns the optional note to record on the log entry.
func (c UpdateParcelStatusCommand) Note() string {
	return c.note
}

func (c *UpdateParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *UpdateParcelStatusCommand) setTarget(target parcel.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
