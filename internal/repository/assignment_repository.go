package repository

import (
	"context"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	db *gorm.DB
}

type AssignmentRepositoryInterface interface {
	Replace(ctx context.Context, assignment *model.Assignment) error
	ListForAssignee(ctx context.Context, assigneeID uuid.UUID) ([]model.Assignment, error)
	CountUnseen(ctx context.Context, assigneeID uuid.UUID) (int64, error)
	MarkAllSeen(ctx context.Context, assigneeID uuid.UUID) error
}

var _ AssignmentRepositoryInterface = (*AssignmentRepository)(nil)

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Replace drops any previous assignment of the task to the same assignee and
// records the new one.
func (r *AssignmentRepository) Replace(ctx context.Context, assignment *model.Assignment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("assignee_id = ? AND task_id = ?", assignment.AssigneeID, assignment.TaskID).
			Delete(&model.Assignment{}).Error
		if err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(assignment).Error
	})
	return mapError("replace assignment", err)
}

// ListForAssignee returns the assignee's assignments newest first.
func (r *AssignmentRepository) ListForAssignee(ctx context.Context, assigneeID uuid.UUID) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Assignee").
		Preload("Task.Board").
		Where("assignee_id = ?", assigneeID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, mapError("list assignments", err)
}

func (r *AssignmentRepository) CountUnseen(ctx context.Context, assigneeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Where("assignee_id = ? AND seen = ?", assigneeID, false).
		Count(&count).Error
	return count, mapError("count unseen assignments", err)
}

func (r *AssignmentRepository) MarkAllSeen(ctx context.Context, assigneeID uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Where("assignee_id = ? AND seen = ?", assigneeID, false).
		Update("seen", true).Error
	return mapError("mark assignments seen", err)
}
