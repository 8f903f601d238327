package user

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Role determines what a user may do with parcels. Senders create and cancel
// their own parcels, receivers track and confirm delivery of parcels addressed
// to them, and admins manage the full lifecycle.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleSender may create parcels and cancel them before dispatch.
	RoleSender

	// RoleReceiver may track parcels addressed to them and confirm delivery.
	RoleReceiver

	// RoleAdmin is unrestricted: lifecycle transitions, gates, personnel,
	// returns, and deletion.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleSender:   "sender",
		RoleReceiver: "receiver",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses the wire representation of a role.
func RoleFromString(s string) (Role, error) {
	for r, str := range getRoleStrings() {
		if str == s {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire name of the role, or "unknown" for invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Role is one of the three known roles.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}
