package queries

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetParcelQueryHandler serves the authenticated single-parcel read.
type GetParcelQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelQueryHandler creates a handler for single-parcel reads.
func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle loads the parcel, verifies the actor is a party to it (or an admin),
// and returns the full view including the status history.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (*ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var row parcelRow
	err := h.db.WithContext(ctx).
		Table("parcels").
		Where("id = ?", query.ParcelID().Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", query.ParcelID().String())
		}
		return nil, err
	}

	if err = authorizeRead(query.Actor(), row); err != nil {
		return nil, err
	}

	logRows, err := loadHistory(ctx, h.db, row.ID)
	if err != nil {
		return nil, err
	}

	view := viewFromRow(row, historyFromRows(logRows))
	return &view, nil
}

// authorizeRead enforces read ownership: admins see everything, senders their
// own parcels, receivers parcels addressed to them by linked id or email.
func authorizeRead(actor user.Actor, row parcelRow) error {
	switch actor.Role() {
	case user.RoleAdmin:
		return nil
	case user.RoleSender:
		if row.SenderID == actor.ID().Bytes() {
			return nil
		}
	case user.RoleReceiver:
		if row.ReceiverID != nil && *row.ReceiverID == actor.ID().Bytes() {
			return nil
		}
		if actor.Email() != "" && actor.Email() == row.ReceiverEmail {
			return nil
		}
	}

	return errs.NewAuthorizationError(errs.ReasonOwnership, "parcel belongs to another user")
}
