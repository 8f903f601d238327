package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetParcelQueryIsNotConstructed = errors.New(
		"GetParcelQuery must be created via NewGetParcelQuery constructor",
	)
)

// GetParcelQuery is the authenticated single-parcel read. Admins may read any
// parcel; senders and receivers only parcels they are party to.
type GetParcelQuery struct {
	actor    user.Actor
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetParcelQuery creates an ownership-checked parcel read.
func NewGetParcelQuery(actor user.Actor, parcelID kernel.UUID) (GetParcelQuery, error) {
	if err := errors.Join(actor.Validate(), parcelID.Validate()); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{
		actor:    actor,
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// Actor returns the verified request identity.
func (q GetParcelQuery) Actor() user.Actor {
	return q.actor
}

// ParcelID returns the requested parcel's identifier.
func (q GetParcelQuery) ParcelID() kernel.UUID {
	return q.parcelID
}
