package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTransition is the sentinel error for status graph violations.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotAuthorized is the sentinel error for role/ownership/state denials.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrGateBlocked is the sentinel error for mutations rejected because the
	// parcel is flagged, held, or blocked.
	ErrGateBlocked = errors.New("parcel is gated against lifecycle changes")

	// ErrConflict is the sentinel error for uniqueness and concurrency conflicts.
	ErrConflict = errors.New("conflict")
)

// InvalidTransitionError indicates that a requested status change is not an
// edge of the parcel lifecycle graph. Both endpoints are named so the caller
// can report exactly which move was rejected.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given endpoints.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AuthorizationReason classifies why an action was denied, for observability.
type AuthorizationReason int

const (
	// ReasonOwnership: the actor does not own the parcel.
	ReasonOwnership AuthorizationReason = iota + 1

	// ReasonRoleAction: the actor's role may never perform the action.
	ReasonRoleAction

	// ReasonState: the action is disallowed in the parcel's current status.
	ReasonState
)

func (r AuthorizationReason) String() string {
	switch r {
	case ReasonOwnership:
		return "ownership"
	case ReasonRoleAction:
		return "role"
	case ReasonState:
		return "state"
	default:
		return "unknown"
	}
}

// AuthorizationError indicates that the actor may not perform the requested
// action on the parcel. Denials are terminal for the request.
type AuthorizationError struct {
	Reason AuthorizationReason
	Detail string
}

// NewAuthorizationError creates an AuthorizationError with a reason code and
// a human-readable detail.
func NewAuthorizationError(reason AuthorizationReason, detail string) *AuthorizationError {
	return &AuthorizationError{Reason: reason, Detail: detail}
}

func (e *AuthorizationError) Error() string {
	return sanitize(fmt.Sprintf("%s (%s): %s", ErrNotAuthorized, e.Reason, e.Detail))
}

func (e *AuthorizationError) Unwrap() error {
	return ErrNotAuthorized
}

// GateBlockedError indicates that one or more administrative gates (flag,
// hold, block) prevent lifecycle mutation of the parcel.
type GateBlockedError struct {
	Gates []string
}

// NewGateBlockedError creates a GateBlockedError naming the active gates.
func NewGateBlockedError(gates ...string) *GateBlockedError {
	return &GateBlockedError{Gates: gates}
}

func (e *GateBlockedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrGateBlocked, strings.Join(e.Gates, ", ")))
}

func (e *GateBlockedError) Unwrap() error {
	return ErrGateBlocked
}

// ConflictError indicates a uniqueness violation or a lost-update conflict,
// such as tracking code generation exhausting its retry budget or a stale
// aggregate version on save.
type ConflictError struct {
	Resource string
	Detail   string
	Cause    error
}

// NewConflictError creates a ConflictError without an underlying cause.
func NewConflictError(resource, detail string) *ConflictError {
	return &ConflictError{Resource: resource, Detail: detail}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying
// cause, typically a driver-level unique violation.
func NewConflictErrorWithCause(resource, detail string, cause error) *ConflictError {
	return &ConflictError{Resource: resource, Detail: detail, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s: %s (cause: %s)", ErrConflict, e.Resource, e.Detail, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s: %s", ErrConflict, e.Resource, e.Detail))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
