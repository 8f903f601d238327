package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrParcelStatsQueryIsNotConstructed = errors.New(
		"ParcelStatsQuery must be created via NewParcelStatsQuery constructor",
	)
)

// ParcelStatsQuery is the admin-only fleet overview.
type ParcelStatsQuery struct {
	actor user.Actor

	guard guard.ConstructorGuard
}

// NewParcelStatsQuery creates a stats query for the given actor.
func NewParcelStatsQuery(actor user.Actor) (ParcelStatsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ParcelStatsQuery{}, err
	}

	return ParcelStatsQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ParcelStatsQuery) Validate() error {
	return q.guard.Validate(ErrParcelStatsQueryIsNotConstructed)
}

// Actor returns the verified request identity.
func (q ParcelStatsQuery) Actor() user.Actor {
	return q.actor
}

// ParcelStatsQueryResponse aggregates the whole parcel fleet. CollectedRevenue
// sums the fees of delivered parcels that have been paid.
type ParcelStatsQueryResponse struct {
	Total    int64
	ByStatus map[string]int64

	Urgent  int64
	Flagged int64
	Held    int64
	Blocked int64

	CollectedRevenue float64
}
