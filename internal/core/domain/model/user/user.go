package user

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the NewUser factory method.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a registered account. The authentication collaborator issues and
// verifies credentials; this entity only carries what parcel operations need:
// identity, contact details for party snapshots, role, and the blocked flag
// that prevents blocked senders from creating parcels.
type User struct {
	id      kernel.UUID
	name    string
	email   string
	phone   string
	address string
	role    Role
	blocked bool

	isConstructed bool
}

// NewUser creates a validated user entity.
func NewUser(id kernel.UUID, name, email, phone, address string, role Role) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	u.phone = phone
	u.address = address
	return u, nil
}

// RestoreUser reconstructs a user from persistence, including the blocked flag.
func RestoreUser(id kernel.UUID, name, email, phone, address string, role Role, blocked bool) (*User, error) {
	u, err := NewUser(id, name, email, phone, address, role)
	if err != nil {
		return nil, err
	}
	u.blocked = blocked
	return u, nil
}

// Validate ensures the User was built through a constructor.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's lowercased email address.
func (u *User) Email() string { return u.email }

// Phone returns the user's phone number, if any.
func (u *User) Phone() string { return u.phone }

// Address returns the user's address, if any.
func (u *User) Address() string { return u.address }

// Role returns the user's role.
func (u *User) Role() Role { return u.role }

// IsBlocked reports whether the account is blocked from creating parcels.
func (u *User) IsBlocked() bool { return u.blocked }

// SetBlocked updates the account's blocked flag.
func (u *User) SetBlocked(blocked bool) {
	u.blocked = blocked
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidError("email")
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
