package model

import (
	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Description string    `gorm:"not null"`
	Sequence    int       `gorm:"not null"`
	Position    int       `gorm:"not null"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AssigneeID  uuid.UUID `gorm:"type:uuid;not null"`

	Assignee User  `gorm:"foreignKey:AssigneeID"`
	Board    Board `gorm:"foreignKey:BoardID"`
}

// TaskOrder is one element of a bulk reorder request.
type TaskOrder struct {
	TaskID   uuid.UUID
	BoardID  uuid.UUID
	ColumnID uuid.UUID
}

type TaskView struct {
	ID          uuid.UUID   `json:"id"`
	Description string      `json:"description"`
	Sequence    int         `json:"sequence"`
	Position    int         `json:"position"`
	BoardID     uuid.UUID   `json:"board_id"`
	ColumnID    uuid.UUID   `json:"column_id"`
	Assignee    UserSummary `json:"assignee"`
}

func (t Task) View() TaskView {
	return TaskView{
		ID:          t.ID,
		Description: t.Description,
		Sequence:    t.Sequence,
		Position:    t.Position,
		BoardID:     t.BoardID,
		ColumnID:    t.ColumnID,
		Assignee:    t.Assignee.Summary(),
	}
}
