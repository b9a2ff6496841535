package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnRepository struct {
	db *gorm.DB
}

type ColumnRepositoryInterface interface {
	Create(ctx context.Context, column *model.Column) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ ColumnRepositoryInterface = (*ColumnRepository)(nil)

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

// Create appends the column after the board's last one, under the board row
// lock.
func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBoard(tx, column.BoardID); err != nil {
			return err
		}

		var maxSequence struct {
			Max int
		}
		err := tx.Model(&model.Column{}).
			Select("COALESCE(MAX(sequence), 0) as max").
			Where("board_id = ?", column.BoardID).
			Scan(&maxSequence).Error
		if err != nil {
			return err
		}
		column.Sequence = maxSequence.Max + 1
		return tx.Create(column).Error
	})
	return mapError("create column", err)
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapError("get column", err)
	}
	return &column, nil
}

func (r *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("sequence").Find(&columns).Error
	return columns, mapError("list columns", err)
}

func (r *ColumnRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	err := r.db.WithContext(ctx).Model(&model.Column{}).Where("id = ?", id).Update("column_name", name).Error
	return mapError("rename column", err)
}

// Delete removes the column, its tasks and their assignments.
func (r *ColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := tx.Model(&model.Task{}).Select("id").Where("column_id = ?", id)
		if err := tx.Where("task_id IN (?)", tasks).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Column{}).Error
	})
	return mapError("delete column", err)
}
