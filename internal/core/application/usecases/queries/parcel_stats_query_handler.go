package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// ParcelStatsQueryHandler serves the admin fleet overview.
type ParcelStatsQueryHandler struct {
	db *gorm.DB
}

// NewParcelStatsQueryHandler creates a handler for fleet statistics.
func NewParcelStatsQueryHandler(db *gorm.DB) ParcelStatsQueryHandler {
	return ParcelStatsQueryHandler{db: db}
}

type statsRow struct {
	Total      int64
	Requested  int64
	Approved   int64
	Dispatched int64
	InTransit  int64
	Delivered  int64
	Cancelled  int64
	Returned   int64

	Urgent  int64
	Flagged int64
	Held    int64
	Blocked int64

	Revenue float64
}

// Handle computes the fleet aggregates in a single pass over the parcels
// table. Only admins may run it.
func (h ParcelStatsQueryHandler) Handle(ctx context.Context, query ParcelStatsQuery) (*ParcelStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if !query.Actor().IsAdmin() {
		return nil, errs.NewAuthorizationError(errs.ReasonRoleAction, "statistics are restricted to admins")
	}

	var row statsRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)                                        AS total,
			COUNT(*) FILTER (WHERE status = ?)              AS requested,
			COUNT(*) FILTER (WHERE status = ?)              AS approved,
			COUNT(*) FILTER (WHERE status = ?)              AS dispatched,
			COUNT(*) FILTER (WHERE status = ?)              AS in_transit,
			COUNT(*) FILTER (WHERE status = ?)              AS delivered,
			COUNT(*) FILTER (WHERE status = ?)              AS cancelled,
			COUNT(*) FILTER (WHERE status = ?)              AS returned,
			COUNT(*) FILTER (WHERE urgent)                  AS urgent,
			COUNT(*) FILTER (WHERE flagged)                 AS flagged,
			COUNT(*) FILTER (WHERE held)                    AS held,
			COUNT(*) FILTER (WHERE blocked)                 AS blocked,
			COALESCE(SUM(fee_total) FILTER (WHERE status = ? AND fee_paid), 0) AS revenue
		FROM parcels`,
		int(parcel.StatusRequested),
		int(parcel.StatusApproved),
		int(parcel.StatusDispatched),
		int(parcel.StatusInTransit),
		int(parcel.StatusDelivered),
		int(parcel.StatusCancelled),
		int(parcel.StatusReturned),
		int(parcel.StatusDelivered),
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &ParcelStatsQueryResponse{
		Total: row.Total,
		ByStatus: map[string]int64{
			parcel.StatusRequested.String():  row.Requested,
			parcel.StatusApproved.String():   row.Approved,
			parcel.StatusDispatched.String(): row.Dispatched,
			parcel.StatusInTransit.String():  row.InTransit,
			parcel.StatusDelivered.String():  row.Delivered,
			parcel.StatusCancelled.String():  row.Cancelled,
			parcel.StatusReturned.String():   row.Returned,
		},
		Urgent:           row.Urgent,
		Flagged:          row.Flagged,
		Held:             row.Held,
		Blocked:          row.Blocked,
		CollectedRevenue: row.Revenue,
	}, nil
}
