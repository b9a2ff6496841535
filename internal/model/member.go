package model

import (
	"github.com/google/uuid"
)

// BoardMember is the sole authorization fact for board access.
type BoardMember struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BoardID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_board_members_user_board"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_board_members_user_board"`

	User  User  `gorm:"foreignKey:UserID"`
	Board Board `gorm:"foreignKey:BoardID"`
}

type MemberView struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
}
