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

// TaskService keeps a single board-wide ordering of tasks across columns.
type TaskService struct {
	tasks      repository.TaskRepositoryInterface
	columns    repository.ColumnRepositoryInterface
	guard      *Guard
	boardLocks *keyedMutex
}

func NewTaskService(tasks repository.TaskRepositoryInterface, columns repository.ColumnRepositoryInterface, guard *Guard) *TaskService {
	return &TaskService{
		tasks:      tasks,
		columns:    columns,
		guard:      guard,
		boardLocks: newKeyedMutex(),
	}
}

type CreateTaskInput struct {
	Description string
	BoardID     uuid.UUID
	ColumnID    uuid.UUID
}

// Create adds a task assigned to its creator at the end of the board order.
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, in CreateTaskInput) (*model.TaskView, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" || in.BoardID == uuid.Nil || in.ColumnID == uuid.Nil {
		return nil, apperr.NewBadInput("Please provide all value")
	}
	if err := s.guard.RequireMember(ctx, userID, in.BoardID); err != nil {
		return nil, err
	}

	column, err := s.columns.GetByID(ctx, in.ColumnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, apperr.NewNotFound("Column not found")
	}
	if column.BoardID != in.BoardID {
		return nil, apperr.NewBadInput("Column does not belong to the board")
	}

	task := &model.Task{
		Description: in.Description,
		BoardID:     in.BoardID,
		ColumnID:    in.ColumnID,
		AssigneeID:  userID,
	}
	unlock := s.boardLocks.lock(in.BoardID)
	err = s.tasks.CreateWithSequence(ctx, task)
	unlock()
	if errors.Is(err, repository.ErrBoardNotFound) {
		return nil, apperr.NewNotFound("Board not found")
	}
	if err != nil {
		return nil, err
	}

	created, err := s.tasks.GetByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, apperr.NewNotFound("Task not found")
	}
	view := created.View()
	return &view, nil
}

// ListByBoard returns the board's tasks in display order.
func (s *TaskService) ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]model.TaskView, error) {
	if err := s.guard.RequireMember(ctx, userID, boardID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	views := make([]model.TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = t.View()
	}
	return views, nil
}

// UpdateOrder gives the i-th element of order position i+1 and moves it to
// the given column. The batch is applied entirely or not at all. Tasks left
// out of order keep their previous positions.
func (s *TaskService) UpdateOrder(ctx context.Context, userID, boardID uuid.UUID, order []model.TaskOrder) error {
	if len(order) == 0 {
		return apperr.NewBadInput("Please provide all value")
	}
	if err := s.guard.RequireMember(ctx, userID, boardID); err != nil {
		return err
	}

	columns, err := s.columns.GetByBoardID(ctx, boardID)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]bool, len(columns))
	for _, c := range columns {
		known[c.ID] = true
	}
	for _, item := range order {
		if item.BoardID != boardID || !known[item.ColumnID] {
			return apperr.NewBadInput("tasks order is not valid")
		}
	}

	err = s.tasks.Reorder(ctx, boardID, order)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return apperr.NewBadInput("tasks order is not valid")
	}
	return err
}

func (s *TaskService) UpdateDescription(ctx context.Context, userID, taskID uuid.UUID, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return apperr.NewBadInput("Please provide task description")
	}
	if _, err := s.authorize(ctx, userID, taskID); err != nil {
		return err
	}
	return s.mapMissing(s.tasks.UpdateDescription(ctx, taskID, description))
}

// Delete removes the task and its assignments.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.authorize(ctx, userID, taskID); err != nil {
		return err
	}
	return s.mapMissing(s.tasks.Delete(ctx, taskID))
}

func (s *TaskService) authorize(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NewNotFound("Not found task with id " + taskID.String())
	}
	if err := s.guard.RequireMember(ctx, userID, task.BoardID); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) mapMissing(err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return apperr.NewNotFound("Task not found")
	}
	return err
}
