package profilerepo

import (
	"context"
	"errors"

	"buffet/internal/core/domain/model/profile"
	"buffet/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository implements ports.ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Get retrieves the profile for the given chat identity.
func (r *GormProfileRepository) Get(ctx context.Context, userID int64) (profile.Profile, error) {
	var dto ProfileDTO
	err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profile.Profile{}, errs.NewObjectNotFoundError("profile", userID)
		}
		return profile.Profile{}, err
	}

	return toDomain(dto)
}

// Upsert inserts the profile or refreshes its username and full name. The
// stored role survives the upsert: roles are assigned out of band and a
// returning actor must not be demoted back to customer.
func (r *GormProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "full_name"}),
		}).
		Create(&dto).Error
}

// GetByRole retrieves every profile holding the given role.
func (r *GormProfileRepository) GetByRole(ctx context.Context, role profile.Role) ([]profile.Profile, error) {
	var dtos []ProfileDTO
	err := r.db.WithContext(ctx).Find(&dtos, "role = ?", string(role)).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]profile.Profile, 0, len(dtos))
	for _, dto := range dtos {
		p, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}
