package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrAssignPersonnelCommandIsNotConstructed = errors.New(
		"AssignPersonnelCommand must be created via NewAssignPersonnelCommand constructor",
	)
)

// AssignPersonnelCommand represents an admin's request to record who is
// handling the delivery. Metadata only, not a transition, but still subject
// to the hard gate.
type AssignPersonnelCommand struct { //nolint:recvcheck //using for validation
	actor     user.Actor
	parcelID  kernel.UUID
	personnel string

	guard guard.ConstructorGuard
}

// NewAssignPersonnelCommand creates a command to assign delivery personnel.
func NewAssignPersonnelCommand(actor user.Actor, parcelID kernel.UUID, personnel string) (AssignPersonnelCommand, error) {
	cmd := AssignPersonnelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setParcelID(parcelID),
		cmd.setPersonnel(personnel),
	); err != nil {
		return AssignPersonnelCommand{}, err
	}

	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPersonnelCommand) Validate() error {
	return c.guard.Validate(ErrAssignPersonnelCommandIsNotConstructed)
}

// Actor returns the verified request identity.
func (c AssignPersonnelCommand) Actor() user.Actor {
	return c.actor
}

// ParcelID returns the target parcel's identifier.
func (c AssignPersonnelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Personnel returns the delivery personnel identifier to record.
func (c AssignPersonnelCommand) Personnel() string {
	return c.personnel
}

func (c *AssignPersonnelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *AssignPersonnelCommand) setPersonnel(personnel string) error {
	if personnel == "" {
		return errs.NewValueIsRequiredError("personnel")
	}
	c.personnel = personnel
	return nil
}
