// Package profilerepo persists actor profiles and their roles.
package profilerepo

import (
	"buffet/internal/core/domain/model/profile"
)

// ProfileDTO represents the database structure for actor profiles. The chat
// identity is the primary key; one chat, one profile.
type ProfileDTO struct {
	UserID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Username string
	FullName string
	Role     string `gorm:"index"`
}

// TableName specifies the database table name for profiles.
func (ProfileDTO) TableName() string {
	return "profiles"
}

func fromDomain(p profile.Profile) ProfileDTO {
	return ProfileDTO{
		UserID:   p.UserID(),
		Username: p.Username(),
		FullName: p.FullName(),
		Role:     string(p.Role()),
	}
}

func toDomain(dto ProfileDTO) (profile.Profile, error) {
	return profile.NewProfile(dto.UserID, dto.Username, dto.FullName, profile.Role(dto.Role))
}
