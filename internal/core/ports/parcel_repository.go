// Package ports defines repository interfaces for the parcel tracking domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Implementations must write the parcel row and its newly appended status-log
// entries atomically, and must use optimistic locking so that two concurrent
// saves against the same loaded version cannot both succeed.
type ParcelRepository interface {
	// Add persists a new parcel aggregate together with its initial status-log
	// entry. A tracking-code uniqueness violation surfaces as a ConflictError
	// wrapping errs.ErrConflict so the caller can retry code generation.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel, appending any new
	// status-log entries in the same transaction. The save is versioned: if
	// the stored version no longer matches the loaded aggregate's version,
	// Update fails with errs.ErrVersionIsInvalid and nothing is written.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by its internal identifier, including the
	// complete status log in chronological order.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingCode retrieves a parcel by its public tracking code.
	GetByTrackingCode(ctx context.Context, code parcel.TrackingCode) (*parcel.Parcel, error)

	// Delete removes a parcel and its status log permanently. Used by the
	// admin hard-delete operation only.
	Delete(ctx context.Context, id kernel.UUID) error
}
