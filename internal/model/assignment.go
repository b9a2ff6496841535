package model

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AssigneeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_assignments_assignee_task"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null"`
	TaskID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_assignments_assignee_task"`
	BoardID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Seen       bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Assignee User `gorm:"foreignKey:AssigneeID"`
	Sender   User `gorm:"foreignKey:SenderID"`
	Task     Task `gorm:"foreignKey:TaskID"`
}

type AssignmentTaskView struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	BoardID     uuid.UUID `json:"board_id"`
	BoardName   string    `json:"board_name"`
}

type AssignmentView struct {
	ID        uuid.UUID          `json:"id"`
	Seen      bool               `json:"seen"`
	CreatedAt time.Time          `json:"createdAt"`
	Assignee  UserSummary        `json:"assignee"`
	Sender    UserSummary        `json:"sender"`
	Task      AssignmentTaskView `json:"task"`
}

func (a Assignment) View() AssignmentView {
	return AssignmentView{
		ID:        a.ID,
		Seen:      a.Seen,
		CreatedAt: a.CreatedAt,
		Assignee:  a.Assignee.Summary(),
		Sender:    a.Sender.Summary(),
		Task: AssignmentTaskView{
			ID:          a.Task.ID,
			Description: a.Task.Description,
			BoardID:     a.Task.BoardID,
			BoardName:   a.Task.Board.Name,
		},
	}
}
