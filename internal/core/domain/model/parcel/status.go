package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel. It implements a state
// machine with a fixed transition graph so parcels always follow the delivery
// workflow:
//
//	requested ──> approved ──> dispatched ──> in-transit ──> delivered
//	    │             │             │ ▲            │
//	    ▼             ▼             ▼ │            ▼
//	cancelled     cancelled      returned ─────────┘
//
// delivered and cancelled are terminal. returned is not: it may re-enter
// dispatched to model re-delivery after a failed handover.
//
// Status is a value object; the administrative gates (flag/hold/block) are
// orthogonal to it and live on the Parcel aggregate.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusRequested is the initial status assigned when a sender creates a parcel.
	StatusRequested

	// StatusApproved indicates the parcel request has been accepted for delivery.
	StatusApproved

	// StatusDispatched indicates the parcel has left the origin facility.
	StatusDispatched

	// StatusInTransit indicates the parcel is on its way to the receiver.
	StatusInTransit

	// StatusDelivered indicates the receiver confirmed the handover. Terminal.
	StatusDelivered

	// StatusCancelled indicates the parcel was cancelled before dispatch. Terminal.
	StatusCancelled

	// StatusReturned indicates the parcel came back after dispatch.
	// Not terminal: a returned parcel may be dispatched again.
	StatusReturned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusRequested:  "requested",
		StatusApproved:   "approved",
		StatusDispatched: "dispatched",
		StatusInTransit:  "in-transit",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
		StatusReturned:   "returned",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusRequested:  "requested",
		StatusApproved:   "approved",
		StatusDispatched: "dispatched",
		StatusInTransit:  "in-transit",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
		StatusReturned:   "returned",
	}
}

// transitions is the complete edge set of the lifecycle graph. Every status
// mutation in the application is checked against this table.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		StatusRequested:  {StatusApproved, StatusCancelled},
		StatusApproved:   {StatusDispatched, StatusCancelled},
		StatusDispatched: {StatusInTransit, StatusReturned},
		StatusInTransit:  {StatusDelivered, StatusReturned},
		StatusDelivered:  {},
		StatusCancelled:  {},
		StatusReturned:   {StatusDispatched},
	}
}

// StatusFromString parses the wire representation of a status ("requested",
// "in-transit", ...). Returns an error for unknown names.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid parcel status", s))
}

// Validate checks that the Status is one of the seven lifecycle statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0 && s.Validate() == nil
}

// CanTransitionTo reports whether (s, to) is an edge of the lifecycle graph.
func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError naming both endpoints
// if (s, to) is not an edge of the lifecycle graph.
func (s Status) ValidateTransition(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(to) {
		return errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return nil
}

// TransitionTo returns the new status after validating the move against the
// lifecycle graph.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := s.ValidateTransition(to); err != nil {
		return StatusUnknown, err
	}
	return to, nil
}
