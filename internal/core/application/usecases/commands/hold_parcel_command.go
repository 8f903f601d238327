package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrHoldParcelCommandIsNotConstructed = errors.New(
		"HoldParcelCommand must be created via NewHoldParcelCommand constructor",
	)
)

// HoldParcelCommand represents an admin's request to set or clear the hold
// gate on a parcel.
type HoldParcelCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	parcelID kernel.UUID
	held     bool
	note     string

	guard guard.ConstructorGuard
}

// NewHoldParcelCommand creates a command to toggle the hold gate.
func NewHoldParcelCommand(actor user.Actor, parcelID kernel.UUID, held bool, note string) (HoldParcelCommand, error) {
	cmd := HoldParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setParcelID(parcelID),
	); err != nil {
		return HoldParcelCommand{}, err
	}

	cmd.actor = actor
	cmd.held = held
	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c HoldParcelCommand) Validate() error {
	return c.guard.Validate(ErrHoldParcelCommandIsNotConstructed)
}

// Actor returns the verified request identity.
func (c HoldParcelCommand) Actor() user.Actor {
	return c.actor
}

// ParcelID returns the target parcel's identifier.
func (c HoldParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Held returns the desired state of the hold gate.
func (c HoldParcelCommand) Held() bool {
	return c.held
}

// Note returns the optional audit note.
func (c HoldParcelCommand) Note() string {
	return c.note
}

func (c *HoldParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}
