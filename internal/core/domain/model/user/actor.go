package user

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
)

// Actor is the verified identity of the caller of a request: user id, role,
// and email, as established by the authentication collaborator. It is passed
// explicitly into every command and ownership-checked query; there is no
// implicit request-global identity.
type Actor struct {
	id    kernel.UUID
	role  Role
	email string
}

// NewActor validates and constructs a request identity.
func NewActor(id kernel.UUID, role Role, email string) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		email: strings.ToLower(strings.TrimSpace(email)),
	}, nil
}

// ID returns the actor's user id.
func (a Actor) ID() kernel.UUID { return a.id }

// Role returns the actor's role.
func (a Actor) Role() Role { return a.role }

// Email returns the actor's lowercased email address.
func (a Actor) Email() string { return a.email }

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.role == RoleAdmin }

// Validate returns an error for a zero-value Actor.
func (a Actor) Validate() error {
	return errors.Join(a.id.Validate(), a.role.Validate())
}
