package model

import (
	"time"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

type Invitation struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RecipientID uuid.UUID        `gorm:"type:uuid;not null;index"`
	SenderID    uuid.UUID        `gorm:"type:uuid;not null"`
	BoardID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status      InvitationStatus `gorm:"type:varchar(16);not null;default:pending"`
	Seen        bool             `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Recipient User  `gorm:"foreignKey:RecipientID"`
	Sender    User  `gorm:"foreignKey:SenderID"`
	Board     Board `gorm:"foreignKey:BoardID"`
}

type InvitationView struct {
	ID        uuid.UUID        `json:"id"`
	Status    InvitationStatus `json:"status"`
	Seen      bool             `json:"seen"`
	CreatedAt time.Time        `json:"createdAt"`
	Recipient UserSummary      `json:"recipient"`
	Sender    UserSummary      `json:"sender"`
	Board     BoardSummary     `json:"board"`
}

func (i Invitation) View() InvitationView {
	return InvitationView{
		ID:        i.ID,
		Status:    i.Status,
		Seen:      i.Seen,
		CreatedAt: i.CreatedAt,
		Recipient: i.Recipient.Summary(),
		Sender:    i.Sender.Summary(),
		Board:     i.Board.Summary(),
	}
}
