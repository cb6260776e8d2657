package ports

import (
	"context"

	"buffet/internal/core/domain/model/profile"
)

// ProfileRepository persists actor profiles and their roles.
type ProfileRepository interface {
	// Get retrieves the profile for the given chat identity.
	Get(ctx context.Context, userID int64) (profile.Profile, error)

	// Upsert inserts the profile or refreshes its username and full name.
	// The stored role is never overwritten by an upsert.
	Upsert(ctx context.Context, p profile.Profile) error

	// GetByRole retrieves every profile holding the given role.
	GetByRole(ctx context.Context, role profile.Role) ([]profile.Profile, error)
}
