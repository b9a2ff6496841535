package service

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

type Notifications struct {
	Invitations         []model.InvitationView `json:"invitations"`
	Assignments         []model.AssignmentView `json:"assignments"`
	UnreadInvitations   int64                  `json:"unreadInvitations"`
	UnreadAssignments   int64                  `json:"unreadAssignments"`
	UnreadNotifications int64                  `json:"unreadNotifications"`
}

// NotificationService reads the durable notification state. Unread counts
// never depend on whether a push reached the user.
type NotificationService struct {
	invitations       repository.InvitationRepositoryInterface
	assignments       repository.AssignmentRepositoryInterface
	invitationService *InvitationService
	assignmentService *AssignmentService
}

func NewNotificationService(
	invitations repository.InvitationRepositoryInterface,
	assignments repository.AssignmentRepositoryInterface,
	invitationService *InvitationService,
	assignmentService *AssignmentService,
) *NotificationService {
	return &NotificationService{
		invitations:       invitations,
		assignments:       assignments,
		invitationService: invitationService,
		assignmentService: assignmentService,
	}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) (*Notifications, error) {
	invitations, err := s.invitationService.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentService.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	unreadInvitations, err := s.invitations.CountUnseen(ctx, userID)
	if err != nil {
		return nil, err
	}
	unreadAssignments, err := s.assignments.CountUnseen(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Notifications{
		Invitations:         invitations,
		Assignments:         assignments,
		UnreadInvitations:   unreadInvitations,
		UnreadAssignments:   unreadAssignments,
		UnreadNotifications: unreadInvitations + unreadAssignments,
	}, nil
}
