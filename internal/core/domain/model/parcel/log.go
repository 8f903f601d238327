package parcel

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

const maxNoteLen = 200

// EntryKind distinguishes the two kinds of audit entries that share the
// parcel's single chronological log: lifecycle transitions, which move
// currentStatus along the transition graph, and administrative events
// (flag/hold/block/unblock, personnel assignment), which do not.
type EntryKind int

const (
	// EntryLifecycle records a status transition. Its Status is the new
	// lifecycle status of the parcel.
	EntryLifecycle EntryKind = iota + 1

	// EntryAdministrative records a gate or metadata event. Its Status tags
	// the lifecycle status the parcel was in at the time; its Event names
	// what happened.
	EntryAdministrative
)

// AdminEvent names an administrative action recorded in the log.
type AdminEvent int

const (
	EventNone AdminEvent = iota
	EventFlagged
	EventUnflagged
	EventHeld
	EventUnheld
	EventBlocked
	EventUnblocked
	EventPersonnelAssigned
)

func getAdminEventStrings() map[AdminEvent]string {
	return map[AdminEvent]string{
		EventFlagged:           "flagged",
		EventUnflagged:         "unflagged",
		EventHeld:              "held",
		EventUnheld:            "unheld",
		EventBlocked:           "blocked",
		EventUnblocked:         "unblocked",
		EventPersonnelAssigned: "personnel-assigned",
	}
}

// AdminEventFromString parses the wire representation of an administrative event.
func AdminEventFromString(s string) (AdminEvent, error) {
	for e, str := range getAdminEventStrings() {
		if str == s {
			return e, nil
		}
	}
	return EventNone, errs.NewValueIsInvalidErrorWithCause("adminEvent",
		fmt.Errorf("%q is not a valid administrative event", s))
}

// String returns the wire name of the event, or "" for EventNone.
func (e AdminEvent) String() string {
	return getAdminEventStrings()[e]
}

// LogEntry is one element of a parcel's append-only status history. Entries
// are never mutated or deleted; every mutating operation on a parcel appends
// exactly one.
type LogEntry struct {
	kind     EntryKind
	status   Status
	event    AdminEvent
	at       time.Time
	actorID  kernel.UUID
	actor    user.Role
	location string
	note     string
}

// NewLifecycleEntry records a status transition performed by the given actor.
func NewLifecycleEntry(status Status, at time.Time, actorID kernel.UUID, role user.Role, location, note string) (LogEntry, error) {
	if err := errors.Join(status.Validate(), actorID.Validate(), role.Validate(), validateNote(note)); err != nil {
		return LogEntry{}, err
	}

	return LogEntry{
		kind:     EntryLifecycle,
		status:   status,
		at:       at,
		actorID:  actorID,
		actor:    role,
		location: location,
		note:     note,
	}, nil
}

// NewAdminEntry records an administrative event, tagged with the lifecycle
// status the parcel was in when it happened.
func NewAdminEntry(event AdminEvent, current Status, at time.Time, actorID kernel.UUID, role user.Role, note string) (LogEntry, error) {
	if event == EventNone {
		return LogEntry{}, errs.NewValueIsRequiredError("adminEvent")
	}
	if err := errors.Join(current.Validate(), actorID.Validate(), role.Validate(), validateNote(note)); err != nil {
		return LogEntry{}, err
	}

	return LogEntry{
		kind:    EntryAdministrative,
		status:  current,
		event:   event,
		at:      at,
		actorID: actorID,
		actor:   role,
		note:    note,
	}, nil
}

// RestoreLogEntry reconstructs an entry from persistence.
func RestoreLogEntry(
	kind EntryKind, status Status, event AdminEvent, at time.Time,
	actorID kernel.UUID, role user.Role, location, note string,
) (LogEntry, error) {
	if kind != EntryLifecycle && kind != EntryAdministrative {
		return LogEntry{}, errs.NewValueIsInvalidError("log entry kind")
	}
	if kind == EntryAdministrative && event == EventNone {
		return LogEntry{}, errs.NewValueIsRequiredError("adminEvent")
	}
	if err := errors.Join(status.Validate(), actorID.Validate(), role.Validate()); err != nil {
		return LogEntry{}, err
	}

	return LogEntry{
		kind: kind, status: status, event: event, at: at,
		actorID: actorID, actor: role, location: location, note: note,
	}, nil
}

func validateNote(note string) error {
	if len(note) > maxNoteLen {
		return errs.NewValueIsOutOfRangeError("note length", len(note), 0, maxNoteLen)
	}
	return nil
}

// Kind returns whether the entry is a lifecycle transition or an administrative event.
func (e LogEntry) Kind() EntryKind { return e.kind }

// IsLifecycle reports whether the entry records a status transition.
func (e LogEntry) IsLifecycle() bool { return e.kind == EntryLifecycle }

// Status returns the lifecycle status recorded by (or tagging) the entry.
func (e LogEntry) Status() Status { return e.status }

// Event returns the administrative event, or EventNone for lifecycle entries.
func (e LogEntry) Event() AdminEvent { return e.event }

// At returns the entry's timestamp.
func (e LogEntry) At() time.Time { return e.at }

// ActorID returns the identity of the actor who caused the entry.
func (e LogEntry) ActorID() kernel.UUID { return e.actorID }

// ActorRole returns the role the actor held at the time.
func (e LogEntry) ActorRole() user.Role { return e.actor }

// Location returns the optional location attached to the entry.
func (e LogEntry) Location() string { return e.location }

// Note returns the optional note attached to the entry.
func (e LogEntry) Note() string { return e.note }
