package queries

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackParcelQueryHandler serves the public tracking endpoint.
type TrackParcelQueryHandler struct {
	db *gorm.DB
}

// NewTrackParcelQueryHandler creates a handler for public tracking lookups.
func NewTrackParcelQueryHandler(db *gorm.DB) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{db: db}
}

// Handle looks a parcel up by tracking code and returns its status and
// chronological history.
func (h TrackParcelQueryHandler) Handle(ctx context.Context, query TrackParcelQuery) (*TrackParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var row parcelRow
	err := h.db.WithContext(ctx).
		Table("parcels").
		Where("tracking_code = ?", query.TrackingCode().String()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", query.TrackingCode().String())
		}
		return nil, err
	}

	logRows, err := loadHistory(ctx, h.db, row.ID)
	if err != nil {
		return nil, err
	}

	return &TrackParcelQueryResponse{
		TrackingCode: row.TrackingCode,
		Status:       parcel.Status(row.Status).String(),
		Urgent:       row.Urgent,
		CreatedAt:    row.CreatedAt,
		History:      historyFromRows(logRows),
	}, nil
}
