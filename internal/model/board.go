package model

import (
	"github.com/google/uuid"
)

type Board struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:board_name;not null"`
	Key         string    `gorm:"not null"`
	Description *string
	OwnerID     uuid.UUID `gorm:"type:uuid;not null"`

	Owner   User     `gorm:"foreignKey:OwnerID"`
	Columns []Column `gorm:"foreignKey:BoardID"`
}

// BoardSummary is embedded in invitation and board list views.
type BoardSummary struct {
	ID          uuid.UUID   `json:"board_id"`
	Name        string      `json:"board_name"`
	Key         string      `json:"key"`
	Description *string     `json:"description"`
	Owner       UserSummary `json:"owner"`
}

func (b Board) Summary() BoardSummary {
	return BoardSummary{
		ID:          b.ID,
		Name:        b.Name,
		Key:         b.Key,
		Description: b.Description,
		Owner:       b.Owner.Summary(),
	}
}

// BoardDetail is the full board as seen by one of its members.
type BoardDetail struct {
	BoardSummary
	Columns []Column     `json:"columns"`
	Members []MemberView `json:"members"`
}
