package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepository struct {
	db *gorm.DB
}

type TaskRepositoryInterface interface {
	CreateWithSequence(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Task, error)
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) error
	UpdateAssignee(ctx context.Context, id, assigneeID uuid.UUID) error
	Reorder(ctx context.Context, boardID uuid.UUID, order []model.TaskOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateWithSequence gives the task the next board sequence and puts it at
// the same position. The board row stays locked until the insert commits, so
// concurrent creates on one board are serialized.
func (r *TaskRepository) CreateWithSequence(ctx context.Context, task *model.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBoard(tx, task.BoardID); err != nil {
			return err
		}

		var maxSequence struct {
			Max int
		}
		err := tx.Model(&model.Task{}).
			Select("COALESCE(MAX(sequence), 0) as max").
			Where("board_id = ?", task.BoardID).
			Scan(&maxSequence).Error
		if err != nil {
			return err
		}

		task.Sequence = maxSequence.Max + 1
		task.Position = task.Sequence
		return tx.Omit(clause.Associations).Create(task).Error
	})
	return mapError("create task", err)
}

// GetByID retrieves a task with its board and assignee.
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Board").
		Preload("Assignee").
		Where("id = ?", id).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get task", err)
	}
	return &task, nil
}

// ListByBoard returns the board's tasks in display order.
func (r *TaskRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&tasks).Error
	return tasks, mapError("list tasks", err)
}

func (r *TaskRepository) UpdateDescription(ctx context.Context, id uuid.UUID, description string) error {
	return r.updateColumn(ctx, "update task description", id, "description", description)
}

func (r *TaskRepository) UpdateAssignee(ctx context.Context, id, assigneeID uuid.UUID) error {
	return r.updateColumn(ctx, "update task assignee", id, "assignee_id", assigneeID)
}

func (r *TaskRepository) updateColumn(ctx context.Context, op string, id uuid.UUID, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return mapError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Reorder sets position i+1 and the given column on the i-th task of order.
// Every update is scoped to boardID; if any task is missing from the board
// the whole batch is rolled back with ErrTaskNotFound.
func (r *TaskRepository) Reorder(ctx context.Context, boardID uuid.UUID, order []model.TaskOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, item := range order {
			res := tx.Model(&model.Task{}).
				Where("id = ? AND board_id = ?", item.TaskID, boardID).
				Updates(map[string]any{
					"position":  i + 1,
					"column_id": item.ColumnID,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrTaskNotFound
			}
		}
		return nil
	})
	return mapError("reorder tasks", err)
}

// Delete removes a task and its assignments.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Task{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
	return mapError("delete task", err)
}
