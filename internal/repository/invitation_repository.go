package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvitationRepository struct {
	db *gorm.DB
}

type InvitationRepositoryInterface interface {
	Create(ctx context.Context, invitation *model.Invitation) error
	FindPendingForBoard(ctx context.Context, recipientID, boardID uuid.UUID) (*model.Invitation, error)
	Find(ctx context.Context, recipientID, senderID, boardID uuid.UUID, statuses ...model.InvitationStatus) (*model.Invitation, error)
	Accept(ctx context.Context, invitation *model.Invitation) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]model.Invitation, error)
	CountUnseen(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkAllSeen(ctx context.Context, recipientID uuid.UUID) error
}

var _ InvitationRepositoryInterface = (*InvitationRepository)(nil)

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	return mapError("create invitation", r.db.WithContext(ctx).Omit(clause.Associations).Create(invitation).Error)
}

// FindPendingForBoard returns any pending invitation of recipientID to
// boardID, whoever sent it.
func (r *InvitationRepository) FindPendingForBoard(ctx context.Context, recipientID, boardID uuid.UUID) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND board_id = ? AND status = ?", recipientID, boardID, model.InvitationPending).
		First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("find pending invitation", err)
	}
	return &invitation, nil
}

// Find looks an invitation up by its (recipient, sender, board) triple,
// optionally restricted to the given statuses.
func (r *InvitationRepository) Find(ctx context.Context, recipientID, senderID, boardID uuid.UUID, statuses ...model.InvitationStatus) (*model.Invitation, error) {
	query := r.db.WithContext(ctx).
		Where("recipient_id = ? AND sender_id = ? AND board_id = ?", recipientID, senderID, boardID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var invitation model.Invitation
	err := query.Order("created_at DESC").First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("find invitation", err)
	}
	return &invitation, nil
}

// Accept adds the recipient to the board and marks the invitation accepted.
func (r *InvitationRepository) Accept(ctx context.Context, invitation *model.Invitation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := addMember(tx, invitation.RecipientID, invitation.BoardID); err != nil {
			return err
		}
		res := tx.Model(&model.Invitation{}).
			Where("id = ? AND status = ?", invitation.ID, model.InvitationPending).
			Update("status", model.InvitationAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvitationNotFound
		}
		invitation.Status = model.InvitationAccepted
		return nil
	})
	return mapError("accept invitation", err)
}

func (r *InvitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return mapError("delete invitation", r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Invitation{}).Error)
}

// ListForRecipient returns the recipient's invitations newest first.
func (r *InvitationRepository) ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]model.Invitation, error) {
	var invitations []model.Invitation
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Preload("Board.Owner").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, mapError("list invitations", err)
}

func (r *InvitationRepository) CountUnseen(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("recipient_id = ? AND seen = ?", recipientID, false).
		Count(&count).Error
	return count, mapError("count unseen invitations", err)
}

func (r *InvitationRepository) MarkAllSeen(ctx context.Context, recipientID uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("recipient_id = ? AND seen = ?", recipientID, false).
		Update("seen", true).Error
	return mapError("mark invitations seen", err)
}
