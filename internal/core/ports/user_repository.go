package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for registered accounts.
// Account creation and credentials live with the authentication collaborator;
// parcel operations only need lookups for ownership checks and receiver
// resolution, plus Add for provisioning and tests.
type UserRepository interface {
	// Add persists a new user.
	Add(ctx context.Context, u *user.User) error

	// Get retrieves a user by id, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail retrieves a user by their lowercased email address, or
	// errs.ErrObjectNotFound. Used to resolve a receiver's email to a
	// registered account at parcel creation.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
