package model

import (
	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	DisplayName string    `gorm:"column:display_name;not null" json:"displayName"`
	Verified    bool      `gorm:"not null;default:false" json:"verified"`
}

// UserSummary is the public projection of a user embedded in other views.
type UserSummary struct {
	ID          uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}
