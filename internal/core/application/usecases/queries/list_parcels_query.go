package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrListParcelsQueryIsNotConstructed = errors.New(
		"ListParcelsQuery must be created via NewListParcelsQuery constructor",
	)
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParcelFilter narrows a parcel listing. All fields are optional. The
// identity and gate filters only apply to admin listings; for senders and
// receivers the listing is always scoped to their own parcels.
type ParcelFilter struct {
	Status      *parcel.Status
	Urgent      *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// Search matches tracking code, party names, and description,
	// case-insensitively.
	Search string

	// Admin-only filters.
	SenderID   *kernel.UUID
	ReceiverID *kernel.UUID
	Flagged    *bool
	Held       *bool
	Blocked    *bool
}

// ListParcelsQuery is a filtered, paginated parcel listing. Non-admin actors
// always see only their own parcels regardless of filters.
type ListParcelsQuery struct {
	actor    user.Actor
	filter   ParcelFilter
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewListParcelsQuery creates a listing query. Page numbering starts at 1;
// a zero page or page size falls back to the defaults.
func NewListParcelsQuery(actor user.Actor, filter ParcelFilter, page, pageSize int) (ListParcelsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListParcelsQuery{}, err
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListParcelsQuery{}, err
		}
	}
	if page < 0 {
		return ListParcelsQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if pageSize < 0 || pageSize > maxPageSize {
		return ListParcelsQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, maxPageSize)
	}

	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	return ListParcelsQuery{
		actor:    actor,
		filter:   filter,
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

// Actor returns the verified request identity.
func (q ListParcelsQuery) Actor() user.Actor {
	return q.actor
}

// Filter returns the listing filter.
func (q ListParcelsQuery) Filter() ParcelFilter {
	return q.filter
}

// Page returns the 1-based page number.
func (q ListParcelsQuery) Page() int {
	return q.page
}

// PageSize returns the page size.
func (q ListParcelsQuery) PageSize() int {
	return q.pageSize
}

// ListParcelsQueryResponse is one page of a parcel listing plus the total
// count of rows matching the filter.
type ListParcelsQueryResponse struct {
	Items    []ParcelSummary
	Total    int64
	Page     int
	PageSize int
}
