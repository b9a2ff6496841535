package model

import (
	"github.com/google/uuid"
)

type Column struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index" json:"board_id"`
	Name     string    `gorm:"column:column_name;not null" json:"column_name"`
	Sequence int       `gorm:"not null" json:"sequence"`
}

// DefaultColumns are created with every board.
var DefaultColumns = []string{"TO DO", "IN PROGRESS", "DONE"}
