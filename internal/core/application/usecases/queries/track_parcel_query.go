package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrTrackParcelQueryIsNotConstructed = errors.New(
		"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
	)
)

// TrackParcelQuery is the public tracking lookup by code. It requires no
// authentication, so the response deliberately omits party contact details
// and internal identifiers.
type TrackParcelQuery struct {
	trackingCode parcel.TrackingCode

	guard guard.ConstructorGuard
}

// NewTrackParcelQuery creates a tracking lookup, validating the code format
// before the database is touched.
func NewTrackParcelQuery(code string) (TrackParcelQuery, error) {
	trackingCode, err := parcel.TrackingCodeFromString(code)
	if err != nil {
		return TrackParcelQuery{}, err
	}

	return TrackParcelQuery{
		trackingCode: trackingCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

// TrackingCode returns the code being looked up.
func (q TrackParcelQuery) TrackingCode() parcel.TrackingCode {
	return q.trackingCode
}

// TrackParcelQueryResponse is the public view of a tracked parcel.
type TrackParcelQueryResponse struct {
	TrackingCode string
	Status       string
	Urgent       bool
	CreatedAt    time.Time
	History      []HistoryEntryView
}
