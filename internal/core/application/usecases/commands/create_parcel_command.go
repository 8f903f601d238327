package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
)

// CreateParcelCommand represents a sender's request to register a new parcel
// for delivery. The receiver snapshot, physical details, and delivery
// preferences arrive as already-validated value objects; the sender snapshot
// is taken from the sender's account inside the handler.
//
// Example:
//
//	receiver, _ := parcel.NewPartyInfo("Bob", "bob@example.com", "+200", "2 Target Ave")
//	details, _ := parcel.NewDetails(parcel.TypePackage, 2, "", "books", nil)
//	prefs, _ := parcel.NewPreferences(nil, "leave at door", false, time.Now())
//	cmd, err := NewCreateParcelCommand(kernel.NewUUID(), senderID, receiver, details, prefs)
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID    kernel.UUID
	senderID    kernel.UUID
	receiver    parcel.PartyInfo
	details     parcel.Details
	preferences parcel.Preferences

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to register a new parcel.
// Returns an error if any identifier or value object is invalid.
func NewCreateParcelCommand(
	parcelID, senderID kernel.UUID,
	receiver parcel.PartyInfo,
	details parcel.Details,
	preferences parcel.Preferences,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSenderID(senderID),
		cmd.setReceiver(receiver),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	cmd.details = details
	cmd.preferences = preferences
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier the new parcel will be created under.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// SenderID returns the creating sender's user id.
func (c CreateParcelCommand) SenderID() kernel.UUID {
	return c.senderID
}

// Receiver returns the receiver snapshot to store on the parcel.
func (c CreateParcelCommand) Receiver() parcel.PartyInfo {
	return c.receiver
}

// Details returns the parcel's physical attributes.
func (c CreateParcelCommand) Details() parcel.Details {
	return c.details
}

// Preferences returns the delivery preferences.
func (c CreateParcelCommand) Preferences() parcel.Preferences {
	return c.preferences
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setSenderID(senderID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return err
	}
	c.senderID = senderID
	return nil
}

func (c *CreateParcelCommand) setReceiver(receiver parcel.PartyInfo) error {
	if err := receiver.Validate(); err != nil {
		return err
	}
	c.receiver = receiver
	return nil
}
