package services

import (
	"fmt"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

// Action names a lifecycle operation for authorization purposes.
type Action int

const (
	ActionUnknown Action = iota

	// ActionUpdateStatus is the arbitrary status update, admin only.
	ActionUpdateStatus

	// ActionCancel is the sender's cancellation of an undispatched parcel.
	ActionCancel

	// ActionConfirmDelivery is the receiver's confirmation of an in-transit parcel.
	ActionConfirmDelivery

	ActionFlag
	ActionHold
	ActionBlock
	ActionUnblock
	ActionAssignPersonnel
	ActionReturn
	ActionDelete
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUpdateStatus:    "update-status",
		ActionCancel:          "cancel",
		ActionConfirmDelivery: "confirm-delivery",
		ActionFlag:            "flag",
		ActionHold:            "hold",
		ActionBlock:           "block",
		ActionUnblock:         "unblock",
		ActionAssignPersonnel: "assign-personnel",
		ActionReturn:          "return",
		ActionDelete:          "delete",
	}
}

// String returns the action's name, or "unknown" for invalid values.
func (a Action) String() string {
	if s, ok := getActionStrings()[a]; ok {
		return s
	}
	return "unknown"
}

// ActionAuthorizer decides whether an actor may perform a lifecycle action on
// a parcel. It is independent of the transition graph: an operation must pass
// both this check and the graph check, and passing one says nothing about the
// other.
//
// Rules:
//   - admin: unrestricted on all actions
//   - sender: only cancel, only on own parcels, only before dispatch
//     (requested or approved)
//   - receiver: only confirm-delivery, only on parcels addressed to them
//     (matched by user id or registered email), only while in-transit;
//     no receiver action at all once the parcel is returned
//
// Denials carry a reason code (ownership, role, state) for observability and
// are terminal for the request.
type ActionAuthorizer struct{}

// NewActionAuthorizer creates the authorizer. It is stateless.
func NewActionAuthorizer() *ActionAuthorizer {
	return &ActionAuthorizer{}
}

// Authorize returns nil if the actor may perform the action on the parcel,
// or an AuthorizationError naming the denial reason.
func (az *ActionAuthorizer) Authorize(actor user.Actor, p *parcel.Parcel, action Action) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	switch actor.Role() {
	case user.RoleAdmin:
		return nil
	case user.RoleSender:
		return az.authorizeSender(actor, p, action)
	case user.RoleReceiver:
		return az.authorizeReceiver(actor, p, action)
	default:
		return errs.NewAuthorizationError(errs.ReasonRoleAction,
			fmt.Sprintf("role %s may not perform %s", actor.Role(), action))
	}
}

func (az *ActionAuthorizer) authorizeSender(actor user.Actor, p *parcel.Parcel, action Action) error {
	if action != ActionCancel {
		return errs.NewAuthorizationError(errs.ReasonRoleAction,
			fmt.Sprintf("senders may only cancel, not %s", action))
	}
	if !p.SenderID().IsEqual(actor.ID()) {
		return errs.NewAuthorizationError(errs.ReasonOwnership,
			"parcel belongs to another sender")
	}
	if p.Status() != parcel.StatusRequested && p.Status() != parcel.StatusApproved {
		return errs.NewAuthorizationError(errs.ReasonState,
			fmt.Sprintf("parcel in status %s can no longer be cancelled by the sender", p.Status()))
	}
	return nil
}

func (az *ActionAuthorizer) authorizeReceiver(actor user.Actor, p *parcel.Parcel, action Action) error {
	// Once a parcel has been returned, no receiver action is possible at all.
	if p.Status() == parcel.StatusReturned {
		return errs.NewAuthorizationError(errs.ReasonState,
			"no receiver action is possible on a returned parcel")
	}
	if action != ActionConfirmDelivery {
		return errs.NewAuthorizationError(errs.ReasonRoleAction,
			fmt.Sprintf("receivers may only confirm delivery, not %s", action))
	}
	if !az.receiverOwns(actor, p) {
		return errs.NewAuthorizationError(errs.ReasonOwnership,
			"parcel is addressed to another receiver")
	}
	if p.Status() != parcel.StatusInTransit {
		return errs.NewAuthorizationError(errs.ReasonState,
			fmt.Sprintf("delivery can only be confirmed while in-transit, parcel is %s", p.Status()))
	}
	return nil
}

// receiverOwns matches by linked user id when the receiver had a registered
// account at creation, falling back to the registered email otherwise.
func (az *ActionAuthorizer) receiverOwns(actor user.Actor, p *parcel.Parcel) bool {
	if id := p.ReceiverID(); id != nil && id.IsEqual(actor.ID()) {
		return true
	}
	return actor.Email() != "" && actor.Email() == p.ReceiverInfo().Email()
}
