package service

import (
	"context"
	"errors"
	"strings"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

type ColumnService struct {
	columns repository.ColumnRepositoryInterface
	guard   *Guard
}

func NewColumnService(columns repository.ColumnRepositoryInterface, guard *Guard) *ColumnService {
	return &ColumnService{columns: columns, guard: guard}
}

// Create appends a column to the board.
func (s *ColumnService) Create(ctx context.Context, userID, boardID uuid.UUID, name string) (*model.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" || boardID == uuid.Nil {
		return nil, apperr.NewBadInput("Please provide all value")
	}
	if err := s.guard.RequireMember(ctx, userID, boardID); err != nil {
		return nil, err
	}

	column := &model.Column{BoardID: boardID, Name: name}
	err := s.columns.Create(ctx, column)
	if errors.Is(err, repository.ErrBoardNotFound) {
		return nil, apperr.NewNotFound("Board not found")
	}
	if err != nil {
		return nil, err
	}
	return column, nil
}

func (s *ColumnService) Rename(ctx context.Context, userID, columnID uuid.UUID, name string) (*model.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewBadInput("Please provide column name")
	}
	column, err := s.authorize(ctx, userID, columnID)
	if err != nil {
		return nil, err
	}

	if err := s.columns.Rename(ctx, columnID, name); err != nil {
		return nil, err
	}
	column.Name = name
	return column, nil
}

// Delete removes the column together with its tasks.
func (s *ColumnService) Delete(ctx context.Context, userID, columnID uuid.UUID) error {
	if _, err := s.authorize(ctx, userID, columnID); err != nil {
		return err
	}
	return s.columns.Delete(ctx, columnID)
}

func (s *ColumnService) authorize(ctx context.Context, userID, columnID uuid.UUID) (*model.Column, error) {
	column, err := s.columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, apperr.NewNotFound("Column not found")
	}
	if err := s.guard.RequireMember(ctx, userID, column.BoardID); err != nil {
		return nil, err
	}
	return column, nil
}
