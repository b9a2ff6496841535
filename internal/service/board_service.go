package service

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/realtime"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

const defaultBoardsPerPage = 5

type BoardService struct {
	boards   repository.BoardRepositoryInterface
	members  repository.MemberRepositoryInterface
	users    repository.UserRepositoryInterface
	guard    *Guard
	notifier Notifier
}

func NewBoardService(
	boards repository.BoardRepositoryInterface,
	members repository.MemberRepositoryInterface,
	users repository.UserRepositoryInterface,
	guard *Guard,
	notifier Notifier,
) *BoardService {
	return &BoardService{
		boards:   boards,
		members:  members,
		users:    users,
		guard:    guard,
		notifier: notifier,
	}
}

type CreateBoardInput struct {
	Name           string
	Key            string
	Description    *string
	InvitedMembers []uuid.UUID
}

type UpdateBoardInput struct {
	Name        string
	Key         string
	Description *string
}

type BoardPage struct {
	Boards     []model.BoardSummary `json:"boards"`
	NumOfPage  int                  `json:"numOfPage"`
	TotalPages int                  `json:"totalPages"`
}

// Create stores the board with its default columns, makes the owner a member
// and invites the requested users.
func (s *BoardService) Create(ctx context.Context, ownerID uuid.UUID, in CreateBoardInput) (*model.BoardSummary, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Key = strings.TrimSpace(in.Key)
	if in.Name == "" || in.Key == "" {
		return nil, apperr.NewBadInput("Please provide all value")
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperr.NewUnauthenticated("User not found")
	}

	recipients, err := s.invitees(ctx, ownerID, in.InvitedMembers)
	if err != nil {
		return nil, err
	}
	invitations := make([]model.Invitation, len(recipients))
	for i, recipientID := range recipients {
		invitations[i] = model.Invitation{
			RecipientID: recipientID,
			SenderID:    ownerID,
			Status:      model.InvitationPending,
		}
	}

	board := &model.Board{
		Name:        in.Name,
		Key:         in.Key,
		Description: in.Description,
		OwnerID:     ownerID,
	}
	if err := s.boards.CreateWithDefaults(ctx, board, invitations); err != nil {
		return nil, err
	}
	board.Owner = *owner

	for _, recipientID := range recipients {
		s.notifier.Notify(recipientID, realtime.EventInvitationCome, invitationMessage(board.Name, owner.DisplayName))
	}

	summary := board.Summary()
	return &summary, nil
}

// invitees drops the owner and duplicates and checks every user exists.
func (s *BoardService) invitees(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{ownerID: true}
	var recipients []uuid.UUID
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperr.NewNotFound("Not found recipient user")
		}
		recipients = append(recipients, id)
	}
	return recipients, nil
}

// List pages through the caller's boards. Pages start at 1.
func (s *BoardService) List(ctx context.Context, userID uuid.UUID, query string, page, limit int) (*BoardPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultBoardsPerPage
	}

	boards, total, err := s.boards.ListForMember(ctx, userID, strings.TrimSpace(query), limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.BoardSummary, len(boards))
	for i, b := range boards {
		summaries[i] = b.Summary()
	}
	return &BoardPage{
		Boards:     summaries,
		NumOfPage:  page,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *BoardService) Get(ctx context.Context, userID, boardID uuid.UUID) (*model.BoardDetail, error) {
	if err := s.guard.RequireMember(ctx, userID, boardID); err != nil {
		return nil, err
	}

	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NewNotFound("Board not found")
	}

	members, err := s.members.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return &model.BoardDetail{
		BoardSummary: board.Summary(),
		Columns:      board.Columns,
		Members:      members,
	}, nil
}

// Update replaces the fields that are set in in.
func (s *BoardService) Update(ctx context.Context, userID, boardID uuid.UUID, in UpdateBoardInput) (*model.BoardSummary, error) {
	board, err := s.guard.RequireOwner(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		board.Name = name
	}
	if key := strings.TrimSpace(in.Key); key != "" {
		board.Key = key
	}
	if in.Description != nil {
		board.Description = in.Description
	}

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	summary := board.Summary()
	return &summary, nil
}

func (s *BoardService) Delete(ctx context.Context, userID, boardID uuid.UUID) error {
	if _, err := s.guard.RequireOwner(ctx, userID, boardID); err != nil {
		return err
	}
	return s.boards.Delete(ctx, boardID)
}

func invitationMessage(boardName, senderName string) realtime.Message {
	return realtime.Message{
		Content: fmt.Sprintf("You received an invitation to join %s board by %s", boardName, senderName),
	}
}
