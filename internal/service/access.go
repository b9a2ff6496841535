package service

import (
	"context"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// Guard answers whether a user may act on a board.
type Guard struct {
	members repository.MemberRepositoryInterface
	boards  repository.BoardRepositoryInterface
}

func NewGuard(members repository.MemberRepositoryInterface, boards repository.BoardRepositoryInterface) *Guard {
	return &Guard{members: members, boards: boards}
}

func (g *Guard) IsMember(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
	return g.members.IsMember(ctx, userID, boardID)
}

func (g *Guard) IsOwner(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
	board, err := g.boards.GetByID(ctx, boardID)
	if err != nil {
		return false, err
	}
	return board != nil && board.OwnerID == userID, nil
}

// RequireMember fails with Unauthorized unless userID belongs to the board.
func (g *Guard) RequireMember(ctx context.Context, userID, boardID uuid.UUID) error {
	ok, err := g.IsMember(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewUnauthorized("You are not a member of the board")
	}
	return nil
}

// RequireOwner returns the board when userID owns it.
func (g *Guard) RequireOwner(ctx context.Context, userID, boardID uuid.UUID) (*model.Board, error) {
	board, err := g.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NewNotFound("Board not found")
	}
	if board.OwnerID != userID {
		return nil, apperr.NewUnauthorized("You are not the owner of the board")
	}
	return board, nil
}
