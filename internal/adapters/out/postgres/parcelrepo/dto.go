// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence. It implements the repository pattern for the parcel
// aggregate, converting between the domain model and the relational schema:
// one row per parcel plus an append-only parcel_status_log table keyed by
// (parcel_id, seq).
package parcelrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. The tracking code carries a unique index so collisions surface
// as driver errors; the version column backs the optimistic lock.
type ParcelDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingCode string     `gorm:"uniqueIndex;size:32"`
	SenderID     uuid.UUID  `gorm:"type:uuid;index"`
	ReceiverID   *uuid.UUID `gorm:"type:uuid;index"`

	Sender   PartyDTO `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver PartyDTO `gorm:"embedded;embeddedPrefix:receiver_"`

	ParcelType    int
	WeightKg      float64
	Dimensions    string
	Description   string `gorm:"size:500"`
	DeclaredValue *float64

	DeliveryDate *time.Time
	Instructions string `gorm:"size:200"`
	Urgent       bool

	Fee FeeDTO `gorm:"embedded;embeddedPrefix:fee_"`

	Status    int `gorm:"index"`
	Flagged   bool
	Held      bool
	Blocked   bool
	Personnel string

	Version   int
	CreatedAt time.Time

	Log []StatusLogDTO `gorm:"foreignKey:ParcelID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// PartyDTO is the embedded snapshot of a sender or receiver.
type PartyDTO struct {
	Name    string
	Email   string `gorm:"index"`
	Phone   string
	Address string
}

// FeeDTO is the embedded fee breakdown.
type FeeDTO struct {
	Base   float64
	Weight float64
	Urgent float64
	Total  float64
	Paid   bool
}

// StatusLogDTO represents one status-log entry. The composite primary key
// (parcel_id, seq) makes re-inserting already persisted entries a no-op, so
// saving an aggregate only ever appends.
type StatusLogDTO struct {
	ParcelID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey"`
	Kind      int
	Status    int
	Event     int
	At        time.Time
	ActorID   uuid.UUID `gorm:"type:uuid"`
	ActorRole int
	Location  string
	Note      string `gorm:"size:200"`
}

// TableName overrides GORM's default naming to use "parcel_status_log".
func (StatusLogDTO) TableName() string {
	return "parcel_status_log"
}

// fromDomain converts a parcel aggregate to its database representation,
// including the full status log numbered by position.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var receiverID *uuid.UUID
	if id := aggregate.ReceiverID(); id != nil {
		raw := id.Bytes()
		receiverID = &raw
	}

	dto := ParcelDTO{
		ID:           aggregate.ID().Bytes(),
		TrackingCode: aggregate.TrackingCode().String(),
		SenderID:     aggregate.SenderID().Bytes(),
		ReceiverID:   receiverID,
		Sender:       partyFromDomain(aggregate.SenderInfo()),
		Receiver:     partyFromDomain(aggregate.ReceiverInfo()),

		ParcelType:    int(aggregate.Details().ParcelType()),
		WeightKg:      aggregate.Details().WeightKg(),
		Dimensions:    aggregate.Details().Dimensions(),
		Description:   aggregate.Details().Description(),
		DeclaredValue: aggregate.Details().DeclaredValue(),

		DeliveryDate: aggregate.Preferences().DeliveryDate(),
		Instructions: aggregate.Preferences().Instructions(),
		Urgent:       aggregate.Preferences().Urgent(),

		Fee: FeeDTO{
			Base:   aggregate.Fee().Base(),
			Weight: aggregate.Fee().Weight(),
			Urgent: aggregate.Fee().Urgent(),
			Total:  aggregate.Fee().Total(),
			Paid:   aggregate.Fee().IsPaid(),
		},

		Status:    int(aggregate.Status()),
		Flagged:   aggregate.IsFlagged(),
		Held:      aggregate.IsHeld(),
		Blocked:   aggregate.IsBlocked(),
		Personnel: aggregate.Personnel(),

		Version:   aggregate.Version(),
		CreatedAt: aggregate.CreatedAt(),
	}

	for seq, entry := range aggregate.Log() {
		dto.Log = append(dto.Log, StatusLogDTO{
			ParcelID:  dto.ID,
			Seq:       seq,
			Kind:      int(entry.Kind()),
			Status:    int(entry.Status()),
			Event:     int(entry.Event()),
			At:        entry.At(),
			ActorID:   entry.ActorID().Bytes(),
			ActorRole: int(entry.ActorRole()),
			Location:  entry.Location(),
			Note:      entry.Note(),
		})
	}

	return dto
}

func partyFromDomain(info parcel.PartyInfo) PartyDTO {
	return PartyDTO{
		Name:    info.Name(),
		Email:   info.Email(),
		Phone:   info.Phone(),
		Address: info.Address(),
	}
}

// toDomain converts a database DTO to a parcel aggregate. The log must
// already be sorted by seq.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	var receiverID *kernel.UUID
	if dto.ReceiverID != nil {
		rID, rErr := kernel.UUIDFromBytes((*dto.ReceiverID)[:])
		if rErr != nil {
			return nil, rErr
		}
		receiverID = &rID
	}

	code, err := parcel.TrackingCodeFromString(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	senderInfo, err := partyToDomain(dto.Sender)
	if err != nil {
		return nil, err
	}
	receiverInfo, err := partyToDomain(dto.Receiver)
	if err != nil {
		return nil, err
	}

	details, err := parcel.NewDetails(
		parcel.Type(dto.ParcelType), dto.WeightKg, dto.Dimensions, dto.Description, dto.DeclaredValue,
	)
	if err != nil {
		return nil, err
	}

	log := make([]parcel.LogEntry, 0, len(dto.Log))
	for _, row := range dto.Log {
		actorID, aErr := kernel.UUIDFromBytes(row.ActorID[:])
		if aErr != nil {
			return nil, aErr
		}
		entry, eErr := parcel.RestoreLogEntry(
			parcel.EntryKind(row.Kind), parcel.Status(row.Status), parcel.AdminEvent(row.Event),
			row.At, actorID, user.Role(row.ActorRole), row.Location, row.Note,
		)
		if eErr != nil {
			return nil, eErr
		}
		log = append(log, entry)
	}

	fee, err := parcel.RestoreFee(dto.Fee.Base, dto.Fee.Weight, dto.Fee.Urgent, dto.Fee.Total, dto.Fee.Paid)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id, code, senderID, senderInfo, receiverID, receiverInfo,
		details,
		parcel.RestorePreferences(dto.DeliveryDate, dto.Instructions, dto.Urgent),
		fee,
		parcel.Status(dto.Status), log,
		dto.Flagged, dto.Held, dto.Blocked,
		dto.Personnel, dto.Version, dto.CreatedAt,
	)
}

func partyToDomain(dto PartyDTO) (parcel.PartyInfo, error) {
	return parcel.NewPartyInfo(dto.Name, dto.Email, dto.Phone, dto.Address)
}
