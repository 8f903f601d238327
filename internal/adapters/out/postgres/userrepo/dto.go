// Package userrepo provides data transfer objects and mapping functions for
// registered account persistence.
package userrepo

import (
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user accounts.
// Email carries a unique index; receiver resolution at parcel creation looks
// accounts up by it.
type UserDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string
	Email   string `gorm:"uniqueIndex"`
	Phone   string
	Address string
	Role    int
	Blocked bool
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user entity to its database representation.
func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:      u.ID().Bytes(),
		Name:    u.Name(),
		Email:   u.Email(),
		Phone:   u.Phone(),
		Address: u.Address(),
		Role:    int(u.Role()),
		Blocked: u.IsBlocked(),
	}
}

// toDomain converts a database DTO to a user entity.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, dto.Email, dto.Phone, dto.Address, user.Role(dto.Role), dto.Blocked)
}
