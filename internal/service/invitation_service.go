package service

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/realtime"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// InvitationService runs the board invitation workflow: pending invitations
// are either accepted, which makes the recipient a member, or declined, which
// deletes them.
type InvitationService struct {
	invitations repository.InvitationRepositoryInterface
	members     repository.MemberRepositoryInterface
	users       repository.UserRepositoryInterface
	guard       *Guard
	notifier    Notifier
}

func NewInvitationService(
	invitations repository.InvitationRepositoryInterface,
	members repository.MemberRepositoryInterface,
	users repository.UserRepositoryInterface,
	guard *Guard,
	notifier Notifier,
) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		members:     members,
		users:       users,
		guard:       guard,
		notifier:    notifier,
	}
}

// Create invites recipientID to the sender's board. Re-inviting a pending
// recipient announces the existing invitation again; inviting a member is a
// no-op. The returned string describes the outcome.
func (s *InvitationService) Create(ctx context.Context, senderID, boardID, recipientID uuid.UUID) (string, error) {
	if recipientID == uuid.Nil {
		return "", apperr.NewBadInput("Please provide all value")
	}
	board, err := s.guard.RequireOwner(ctx, senderID, boardID)
	if err != nil {
		return "", err
	}
	if recipientID == senderID {
		return "", apperr.NewBadInput("You cannot invite yourself")
	}

	recipient, err := s.users.GetByID(ctx, recipientID)
	if err != nil {
		return "", err
	}
	if recipient == nil {
		return "", apperr.NewNotFound("Not found recipient user")
	}
	msg := fmt.Sprintf("Invited %s to %s board", recipient.DisplayName, board.Name)

	isMember, err := s.members.IsMember(ctx, recipientID, boardID)
	if err != nil {
		return "", err
	}
	if isMember {
		return msg, nil
	}

	pending, err := s.invitations.FindPendingForBoard(ctx, recipientID, boardID)
	if err != nil {
		return "", err
	}
	if pending == nil {
		invitation := &model.Invitation{
			RecipientID: recipientID,
			SenderID:    senderID,
			BoardID:     boardID,
			Status:      model.InvitationPending,
		}
		// A concurrent invite may win the insert; the pending index rejects ours.
		err = s.invitations.Create(ctx, invitation)
		if err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return "", err
		}
	}

	s.notifier.Notify(recipientID, realtime.EventInvitationCome, invitationMessage(board.Name, board.Owner.DisplayName))
	return msg, nil
}

// Accept consumes the pending invitation from senderID to boardID and
// returns the recipient's refreshed invitation list.
func (s *InvitationService) Accept(ctx context.Context, recipientID, senderID, boardID uuid.UUID) ([]model.InvitationView, error) {
	invitation, err := s.invitations.Find(ctx, recipientID, senderID, boardID, model.InvitationPending)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, apperr.NewNotFound("Not found your invitation")
	}

	err = s.invitations.Accept(ctx, invitation)
	if errors.Is(err, repository.ErrInvitationNotFound) {
		return nil, apperr.NewNotFound("Not found your invitation")
	}
	if err != nil {
		return nil, err
	}
	return s.List(ctx, recipientID)
}

// Decline deletes the invitation unless it was already accepted.
func (s *InvitationService) Decline(ctx context.Context, recipientID, senderID, boardID uuid.UUID) ([]model.InvitationView, error) {
	invitation, err := s.invitations.Find(ctx, recipientID, senderID, boardID)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, apperr.NewNotFound("Not found your invitation")
	}
	if invitation.Status == model.InvitationAccepted {
		return nil, apperr.NewBadInput("Invitation has already been accepted")
	}

	if err := s.invitations.Delete(ctx, invitation.ID); err != nil {
		return nil, err
	}
	return s.List(ctx, recipientID)
}

func (s *InvitationService) MarkSeen(ctx context.Context, recipientID uuid.UUID) error {
	return s.invitations.MarkAllSeen(ctx, recipientID)
}

// List returns the recipient's invitations newest first.
func (s *InvitationService) List(ctx context.Context, recipientID uuid.UUID) ([]model.InvitationView, error) {
	invitations, err := s.invitations.ListForRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	views := make([]model.InvitationView, len(invitations))
	for i, inv := range invitations {
		views[i] = inv.View()
	}
	return views, nil
}
