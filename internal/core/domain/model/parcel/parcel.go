package parcel

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")
)

// Gate names used in GateBlockedError and audit notes.
const (
	gateFlagged = "flagged"
	gateHeld    = "held"
	gateBlocked = "blocked"
)

// Parcel is the aggregate root of the delivery lifecycle. It owns the single
// source of truth for where a parcel is in its lifecycle (currentStatus), the
// append-only status log, and the three administrative gates that suspend
// lifecycle mutation without touching the status itself.
//
// Invariants maintained by this type:
//   - the log always has at least one entry; the first is a Requested
//     lifecycle entry authored by the creating sender
//   - currentStatus always equals the most recent lifecycle entry's status
//   - the sequence of lifecycle entries is a valid walk of the transition graph
//   - while any gate is set, no lifecycle-affecting mutation succeeds
//
// All mutation goes through the methods below; each appends exactly one log
// entry. Nothing else may write currentStatus or the log.
type Parcel struct {
	id           kernel.UUID
	trackingCode TrackingCode

	senderID     kernel.UUID
	receiverID   *kernel.UUID
	senderInfo   PartyInfo
	receiverInfo PartyInfo

	details     Details
	preferences Preferences
	fee         Fee

	status Status
	log    []LogEntry

	flagged bool
	held    bool
	blocked bool

	personnel string

	version   int
	createdAt time.Time

	isConstructed bool
}

// NewParcel creates a parcel in Requested status with its initial lifecycle
// entry authored by the creating sender. The tracking code must already be
// generated; persistence retries creation on code collision.
func NewParcel(
	id kernel.UUID,
	trackingCode TrackingCode,
	senderID kernel.UUID,
	senderInfo PartyInfo,
	receiverID *kernel.UUID,
	receiverInfo PartyInfo,
	details Details,
	preferences Preferences,
	fee Fee,
	createdAt time.Time,
) (*Parcel, error) {
	if err := errors.Join(
		id.Validate(),
		trackingCode.Validate(),
		senderID.Validate(),
		senderInfo.Validate(),
		receiverInfo.Validate(),
	); err != nil {
		return nil, err
	}
	if receiverID != nil {
		if err := receiverID.Validate(); err != nil {
			return nil, err
		}
	}

	initial, err := NewLifecycleEntry(StatusRequested, createdAt, senderID, user.RoleSender, "", "parcel created")
	if err != nil {
		return nil, err
	}

	return &Parcel{
		id:            id,
		trackingCode:  trackingCode,
		senderID:      senderID,
		receiverID:    receiverID,
		senderInfo:    senderInfo,
		receiverInfo:  receiverInfo,
		details:       details,
		preferences:   preferences,
		fee:           fee,
		status:        StatusRequested,
		log:           []LogEntry{initial},
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreParcel reconstructs a parcel from persistence, including gates,
// personnel, log, and optimistic-lock version. The restored log must satisfy
// the aggregate invariants.
func RestoreParcel(
	id kernel.UUID,
	trackingCode TrackingCode,
	senderID kernel.UUID,
	senderInfo PartyInfo,
	receiverID *kernel.UUID,
	receiverInfo PartyInfo,
	details Details,
	preferences Preferences,
	fee Fee,
	status Status,
	log []LogEntry,
	flagged, held, blocked bool,
	personnel string,
	version int,
	createdAt time.Time,
) (*Parcel, error) {
	if err := errors.Join(id.Validate(), trackingCode.Validate(), senderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if len(log) == 0 {
		return nil, errs.NewValueIsInvalidError("status log must not be empty")
	}
	if last, ok := lastLifecycleStatus(log); !ok || last != status {
		return nil, errs.NewValueIsInvalidErrorWithCause("status log",
			fmt.Errorf("current status %s does not match last lifecycle entry", status))
	}

	return &Parcel{
		id:            id,
		trackingCode:  trackingCode,
		senderID:      senderID,
		receiverID:    receiverID,
		senderInfo:    senderInfo,
		receiverInfo:  receiverInfo,
		details:       details,
		preferences:   preferences,
		fee:           fee,
		status:        status,
		log:           log,
		flagged:       flagged,
		held:          held,
		blocked:       blocked,
		personnel:     personnel,
		version:       version,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func lastLifecycleStatus(log []LogEntry) (Status, bool) {
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].IsLifecycle() {
			return log[i].Status(), true
		}
	}
	return StatusUnknown, false
}

// Validate ensures the Parcel was built through a constructor and still
// satisfies its log invariants.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	if len(p.log) == 0 {
		return errs.NewValueIsInvalidError("status log must not be empty")
	}
	if last, ok := lastLifecycleStatus(p.log); !ok || last != p.status {
		return errs.NewValueIsInvalidError("current status does not match last lifecycle entry")
	}
	return nil
}

// IsEqual compares two parcels by identity.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ActiveGates returns the names of the gates currently set, in a stable order.
func (p *Parcel) ActiveGates() []string {
	var gates []string
	if p.flagged {
		gates = append(gates, gateFlagged)
	}
	if p.held {
		gates = append(gates, gateHeld)
	}
	if p.blocked {
		gates = append(gates, gateBlocked)
	}
	return gates
}

// EnsureMutable returns a GateBlockedError naming the active gates if any of
// flagged/held/blocked is set. Every lifecycle-affecting operation consults
// this before doing anything else.
func (p *Parcel) EnsureMutable() error {
	if gates := p.ActiveGates(); len(gates) > 0 {
		return errs.NewGateBlockedError(gates...)
	}
	return nil
}

// ApplyTransition is the single chokepoint for status mutation. It applies
// the hard gate, validates the move against the transition graph, sets the
// new status, and appends one lifecycle entry. Role authorization happens in
// the application layer before this call.
func (p *Parcel) ApplyTransition(
	to Status, at time.Time, actorID kernel.UUID, role user.Role, location, note string,
) error {
	if err := p.EnsureMutable(); err != nil {
		return err
	}

	newStatus, err := p.status.TransitionTo(to)
	if err != nil {
		return err
	}

	entry, err := NewLifecycleEntry(newStatus, at, actorID, role, location, note)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.log = append(p.log, entry)
	return nil
}

// SetFlagged toggles the flag gate and appends a flagged/unflagged audit
// entry. Gate management is exempt from the hard gate by definition.
func (p *Parcel) SetFlagged(flagged bool, at time.Time, adminID kernel.UUID, note string) error {
	event := EventFlagged
	if !flagged {
		event = EventUnflagged
	}
	entry, err := NewAdminEntry(event, p.status, at, adminID, user.RoleAdmin, note)
	if err != nil {
		return err
	}

	p.flagged = flagged
	p.log = append(p.log, entry)
	return nil
}

// SetHeld toggles the hold gate and appends a held/unheld audit entry.
func (p *Parcel) SetHeld(held bool, at time.Time, adminID kernel.UUID, note string) error {
	event := EventHeld
	if !held {
		event = EventUnheld
	}
	entry, err := NewAdminEntry(event, p.status, at, adminID, user.RoleAdmin, note)
	if err != nil {
		return err
	}

	p.held = held
	p.log = append(p.log, entry)
	return nil
}

// SetBlocked toggles the block gate and appends a blocked/unblocked audit
// entry, keeping block symmetric with flag and hold for auditability.
func (p *Parcel) SetBlocked(blocked bool, at time.Time, adminID kernel.UUID, note string) error {
	event := EventBlocked
	if !blocked {
		event = EventUnblocked
	}
	entry, err := NewAdminEntry(event, p.status, at, adminID, user.RoleAdmin, note)
	if err != nil {
		return err
	}

	p.blocked = blocked
	p.log = append(p.log, entry)
	return nil
}

// ClearGates clears all three gates at once and appends a single unblocked
// entry. This is the only operation that clears multiple gates in one step.
func (p *Parcel) ClearGates(at time.Time, adminID kernel.UUID, note string) error {
	entry, err := NewAdminEntry(EventUnblocked, p.status, at, adminID, user.RoleAdmin, note)
	if err != nil {
		return err
	}

	p.flagged = false
	p.held = false
	p.blocked = false
	p.log = append(p.log, entry)
	return nil
}

// AssignPersonnel sets the delivery personnel identifier and appends an audit
// entry tagged with the current status. This is metadata, not a transition,
// but it is still subject to the hard gate.
func (p *Parcel) AssignPersonnel(name string, at time.Time, adminID kernel.UUID) error {
	if name == "" {
		return errs.NewValueIsRequiredError("personnel name")
	}
	if err := p.EnsureMutable(); err != nil {
		return err
	}

	entry, err := NewAdminEntry(EventPersonnelAssigned, p.status, at, adminID, user.RoleAdmin,
		"delivery personnel assigned: "+name)
	if err != nil {
		return err
	}

	p.personnel = name
	p.log = append(p.log, entry)
	return nil
}

// CorrectReceiverAddress applies a support edit to the receiver snapshot's
// address, the only snapshot field that may change after creation.
func (p *Parcel) CorrectReceiverAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	p.receiverInfo = p.receiverInfo.WithAddress(address)
	return nil
}

// ID returns the parcel's internal identifier.
func (p *Parcel) ID() kernel.UUID { return p.id }

// TrackingCode returns the parcel's public tracking code.
func (p *Parcel) TrackingCode() TrackingCode { return p.trackingCode }

// SenderID returns the creating sender's user id.
func (p *Parcel) SenderID() kernel.UUID { return p.senderID }

// ReceiverID returns the receiver's user id, or nil if the receiver's email
// did not match a registered account at creation.
func (p *Parcel) ReceiverID() *kernel.UUID { return p.receiverID }

// SenderInfo returns the sender snapshot captured at creation.
func (p *Parcel) SenderInfo() PartyInfo { return p.senderInfo }

// ReceiverInfo returns the receiver snapshot captured at creation.
func (p *Parcel) ReceiverInfo() PartyInfo { return p.receiverInfo }

// Details returns the parcel's physical attributes.
func (p *Parcel) Details() Details { return p.details }

// Preferences returns the delivery preferences.
func (p *Parcel) Preferences() Preferences { return p.preferences }

// Fee returns the fee breakdown computed at creation.
func (p *Parcel) Fee() Fee { return p.fee }

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status { return p.status }

// Log returns a copy of the append-only status history.
func (p *Parcel) Log() []LogEntry {
	out := make([]LogEntry, len(p.log))
	copy(out, p.log)
	return out
}

// IsFlagged reports whether the flag gate is set.
func (p *Parcel) IsFlagged() bool { return p.flagged }

// IsHeld reports whether the hold gate is set.
func (p *Parcel) IsHeld() bool { return p.held }

// IsBlocked reports whether the block gate is set.
func (p *Parcel) IsBlocked() bool { return p.blocked }

// Personnel returns the assigned delivery personnel identifier, if any.
func (p *Parcel) Personnel() string { return p.personnel }

// Version returns the optimistic-lock version loaded from persistence.
// The repository increments it on every successful save.
func (p *Parcel) Version() int { return p.version }

// CreatedAt returns the creation timestamp.
func (p *Parcel) CreatedAt() time.Time { return p.createdAt }
