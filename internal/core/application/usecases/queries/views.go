// Package queries contains read-only operations over the database. The read
// side works directly against the relational schema instead of loading full
// aggregates, in line with the CQRS split: commands go through repositories
// and the unit of work, queries go through GORM.
package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryEntryView is one status-log entry as exposed to readers. Kind is
// "transition" for lifecycle entries and "event" for administrative ones.
type HistoryEntryView struct {
	Kind     string
	Status   string
	Event    string
	At       time.Time
	Location string
	Note     string
}

// PartyView is a sender or receiver snapshot as exposed to readers.
type PartyView struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// FeeView is the fee breakdown as exposed to readers.
type FeeView struct {
	Base   float64
	Weight float64
	Urgent float64
	Total  float64
	Paid   bool
}

// ParcelView is the full read model of a single parcel.
type ParcelView struct {
	ID           string
	TrackingCode string
	SenderID     string
	ReceiverID   string

	Sender   PartyView
	Receiver PartyView

	ParcelType    string
	WeightKg      float64
	Dimensions    string
	Description   string
	DeclaredValue *float64

	DeliveryDate *time.Time
	Instructions string
	Urgent       bool

	Fee FeeView

	Status    string
	Flagged   bool
	Held      bool
	Blocked   bool
	Personnel string

	Version   int
	CreatedAt time.Time

	History []HistoryEntryView
}

// ParcelSummary is one row of a parcel listing.
type ParcelSummary struct {
	ID           string
	TrackingCode string
	Status       string
	Urgent       bool
	SenderName   string
	ReceiverName string
	FeeTotal     float64
	Flagged      bool
	Held         bool
	Blocked      bool
	CreatedAt    time.Time
}

// parcelRow mirrors the parcels table for read-side scanning. Field names
// follow GORM's snake_case mapping of the write-side schema.
type parcelRow struct {
	ID           uuid.UUID
	TrackingCode string
	SenderID     uuid.UUID
	ReceiverID   *uuid.UUID

	SenderName    string
	SenderEmail   string
	SenderPhone   string
	SenderAddress string

	ReceiverName    string
	ReceiverEmail   string
	ReceiverPhone   string
	ReceiverAddress string

	ParcelType    int
	WeightKg      float64
	Dimensions    string
	Description   string
	DeclaredValue *float64

	DeliveryDate *time.Time
	Instructions string
	Urgent       bool

	FeeBase   float64
	FeeWeight float64
	FeeUrgent float64
	FeeTotal  float64
	FeePaid   bool

	Status    int
	Flagged   bool
	Held      bool
	Blocked   bool
	Personnel string

	Version   int
	CreatedAt time.Time
}

// loadHistory fetches a parcel's status log in chronological order.
func loadHistory(ctx context.Context, db *gorm.DB, parcelID uuid.UUID) ([]logRow, error) {
	var rows []logRow
	err := db.WithContext(ctx).
		Table("parcel_status_log").
		Where("parcel_id = ?", parcelID).
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// logRow mirrors the parcel_status_log table.
type logRow struct {
	ParcelID uuid.UUID
	Seq      int
	Kind     int
	Status   int
	Event    int
	At       time.Time
	Location string
	Note     string
}

func historyFromRows(rows []logRow) []HistoryEntryView {
	history := make([]HistoryEntryView, 0, len(rows))
	for _, row := range rows {
		entry := HistoryEntryView{
			At:       row.At,
			Location: row.Location,
			Note:     row.Note,
		}
		if parcel.EntryKind(row.Kind) == parcel.EntryLifecycle {
			entry.Kind = "transition"
			entry.Status = parcel.Status(row.Status).String()
		} else {
			entry.Kind = "event"
			entry.Status = parcel.Status(row.Status).String()
			entry.Event = parcel.AdminEvent(row.Event).String()
		}
		history = append(history, entry)
	}
	return history
}

func viewFromRow(row parcelRow, history []HistoryEntryView) ParcelView {
	receiverID := ""
	if row.ReceiverID != nil {
		receiverID = row.ReceiverID.String()
	}

	return ParcelView{
		ID:           row.ID.String(),
		TrackingCode: row.TrackingCode,
		SenderID:     row.SenderID.String(),
		ReceiverID:   receiverID,

		Sender: PartyView{
			Name: row.SenderName, Email: row.SenderEmail,
			Phone: row.SenderPhone, Address: row.SenderAddress,
		},
		Receiver: PartyView{
			Name: row.ReceiverName, Email: row.ReceiverEmail,
			Phone: row.ReceiverPhone, Address: row.ReceiverAddress,
		},

		ParcelType:    parcel.Type(row.ParcelType).String(),
		WeightKg:      row.WeightKg,
		Dimensions:    row.Dimensions,
		Description:   row.Description,
		DeclaredValue: row.DeclaredValue,

		DeliveryDate: row.DeliveryDate,
		Instructions: row.Instructions,
		Urgent:       row.Urgent,

		Fee: FeeView{
			Base: row.FeeBase, Weight: row.FeeWeight,
			Urgent: row.FeeUrgent, Total: row.FeeTotal, Paid: row.FeePaid,
		},

		Status:    parcel.Status(row.Status).String(),
		Flagged:   row.Flagged,
		Held:      row.Held,
		Blocked:   row.Blocked,
		Personnel: row.Personnel,

		Version:   row.Version,
		CreatedAt: row.CreatedAt,
		History:   history,
	}
}

func summaryFromRow(row parcelRow) ParcelSummary {
	return ParcelSummary{
		ID:           row.ID.String(),
		TrackingCode: row.TrackingCode,
		Status:       parcel.Status(row.Status).String(),
		Urgent:       row.Urgent,
		SenderName:   row.SenderName,
		ReceiverName: row.ReceiverName,
		FeeTotal:     row.FeeTotal,
		Flagged:      row.Flagged,
		Held:         row.Held,
		Blocked:      row.Blocked,
		CreatedAt:    row.CreatedAt,
	}
}
