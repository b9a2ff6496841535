package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/realtime"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// AssignmentService hands tasks over between board members.
type AssignmentService struct {
	assignments repository.AssignmentRepositoryInterface
	tasks       repository.TaskRepositoryInterface
	users       repository.UserRepositoryInterface
	guard       *Guard
	notifier    Notifier
}

func NewAssignmentService(
	assignments repository.AssignmentRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	users repository.UserRepositoryInterface,
	guard *Guard,
	notifier Notifier,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		tasks:       tasks,
		users:       users,
		guard:       guard,
		notifier:    notifier,
	}
}

// AssignToMember makes the member with recipientEmail the task's assignee.
// Reassigning to the current assignee changes nothing. Self-assignment
// updates the task without recording an assignment or notifying anyone.
func (s *AssignmentService) AssignToMember(ctx context.Context, callerID, taskID uuid.UUID, recipientEmail string) error {
	recipientEmail = strings.ToLower(strings.TrimSpace(recipientEmail))
	if recipientEmail == "" {
		return apperr.NewBadInput("Please provide all value")
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return apperr.NewNotFound("Not found your task")
	}
	recipient, err := s.users.FindByEmail(ctx, recipientEmail)
	if err != nil {
		return err
	}

	// The current assignee short-circuits before a lookup miss is reported.
	if recipient != nil && recipient.ID == task.AssigneeID {
		return nil
	}
	if recipient == nil {
		return apperr.NewNotFound("Not found recipient user")
	}

	if err := s.guard.RequireMember(ctx, callerID, task.BoardID); err != nil {
		return err
	}
	isMember, err := s.guard.IsMember(ctx, recipient.ID, task.BoardID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperr.NewUnauthorized("Recipient user is not a board member")
	}

	err = s.tasks.UpdateAssignee(ctx, task.ID, recipient.ID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return apperr.NewNotFound("Not found your task")
	}
	if err != nil {
		return err
	}
	if recipient.ID == callerID {
		return nil
	}

	assignment := &model.Assignment{
		AssigneeID: recipient.ID,
		SenderID:   callerID,
		TaskID:     task.ID,
		BoardID:    task.BoardID,
	}
	err = s.assignments.Replace(ctx, assignment)
	if errors.Is(err, repository.ErrDuplicate) {
		// A concurrent request recorded the same handoff and notified.
		return nil
	}
	if err != nil {
		return err
	}

	s.notifier.Notify(recipient.ID, realtime.EventAssignmentCome, realtime.Message{
		Content: fmt.Sprintf("You have been assigned the task of %s", task.Description),
	})
	return nil
}

func (s *AssignmentService) MarkSeen(ctx context.Context, assigneeID uuid.UUID) error {
	return s.assignments.MarkAllSeen(ctx, assigneeID)
}

// List returns the assignee's assignments newest first.
func (s *AssignmentService) List(ctx context.Context, assigneeID uuid.UUID) ([]model.AssignmentView, error) {
	assignments, err := s.assignments.ListForAssignee(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	views := make([]model.AssignmentView, len(assignments))
	for i, a := range assignments {
		views[i] = a.View()
	}
	return views, nil
}
