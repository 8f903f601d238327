package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/user"

	"gorm.io/gorm"
)

// ListParcelsQueryHandler serves filtered, paginated parcel listings.
type ListParcelsQueryHandler struct {
	db *gorm.DB
}

// NewListParcelsQueryHandler creates a handler for parcel listings.
func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db}
}

// Handle runs the listing. The result is ordered newest first and carries the
// total match count so callers can page through it.
func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) (*ListParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("parcels")
	tx = scopeToActor(tx, query.Actor())
	tx = applyFilter(tx, query.Actor(), query.Filter())

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []parcelRow
	err := tx.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(query.PageSize()).
		Offset((query.Page() - 1) * query.PageSize()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]ParcelSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, summaryFromRow(row))
	}

	return &ListParcelsQueryResponse{
		Items:    items,
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}, nil
}

// scopeToActor restricts non-admin listings to the actor's own parcels.
// Receivers match by linked account id or by the email recorded at creation.
func scopeToActor(tx *gorm.DB, actor user.Actor) *gorm.DB {
	switch actor.Role() {
	case user.RoleSender:
		return tx.Where("sender_id = ?", actor.ID().Bytes())
	case user.RoleReceiver:
		return tx.Where("receiver_id = ? OR receiver_email = ?", actor.ID().Bytes(), actor.Email())
	default:
		return tx
	}
}

func applyFilter(tx *gorm.DB, actor user.Actor, filter ParcelFilter) *gorm.DB {
	if filter.Status != nil {
		tx = tx.Where("status = ?", int(*filter.Status))
	}
	if filter.Urgent != nil {
		tx = tx.Where("urgent = ?", *filter.Urgent)
	}
	if filter.CreatedFrom != nil {
		tx = tx.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		tx = tx.Where("created_at <= ?", *filter.CreatedTo)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where(
			"tracking_code ILIKE ? OR sender_name ILIKE ? OR receiver_name ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	if !actor.IsAdmin() {
		return tx
	}

	if filter.SenderID != nil {
		tx = tx.Where("sender_id = ?", filter.SenderID.Bytes())
	}
	if filter.ReceiverID != nil {
		tx = tx.Where("receiver_id = ?", filter.ReceiverID.Bytes())
	}
	if filter.Flagged != nil {
		tx = tx.Where("flagged = ?", *filter.Flagged)
	}
	if filter.Held != nil {
		tx = tx.Where("held = ?", *filter.Held)
	}
	if filter.Blocked != nil {
		tx = tx.Where("blocked = ?", *filter.Blocked)
	}

	return tx
}
