package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	CreateWithDefaults(ctx context.Context, board *model.Board, invitations []model.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	ListForMember(ctx context.Context, userID uuid.UUID, query string, limit, offset int) ([]model.Board, int64, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateWithDefaults inserts the board, its owner membership, the default
// columns and the initial invitations in one transaction.
func (r *BoardRepository) CreateWithDefaults(ctx context.Context, board *model.Board, invitations []model.Invitation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(board).Error; err != nil {
			return err
		}

		owner := model.BoardMember{BoardID: board.ID, UserID: board.OwnerID}
		if err := tx.Omit(clause.Associations).Create(&owner).Error; err != nil {
			return err
		}

		columns := make([]model.Column, len(model.DefaultColumns))
		for i, name := range model.DefaultColumns {
			columns[i] = model.Column{BoardID: board.ID, Name: name, Sequence: i + 1}
		}
		if err := tx.Create(&columns).Error; err != nil {
			return err
		}
		board.Columns = columns

		if len(invitations) == 0 {
			return nil
		}
		for i := range invitations {
			invitations[i].BoardID = board.ID
		}
		return tx.Omit(clause.Associations).Create(&invitations).Error
	})
	return mapError("create board", err)
}

// lockBoard takes the board row lock for the rest of tx. Writers that derive
// a per-board counter from MAX() hold it until commit.
func lockBoard(tx *gorm.DB, boardID uuid.UUID) error {
	var board model.Board
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", boardID).
		First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBoardNotFound
	}
	return err
}

// GetByID loads the board with its owner and columns ordered by sequence.
func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("id = ?", id).
		First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get board", err)
	}
	return &board, nil
}

// ListForMember pages through the boards userID belongs to whose name
// contains query, case-insensitively. It also returns the total match count.
func (r *BoardRepository) ListForMember(ctx context.Context, userID uuid.UUID, query string, limit, offset int) ([]model.Board, int64, error) {
	scope := r.db.WithContext(ctx).Model(&model.Board{}).
		Joins("JOIN board_members ON board_members.board_id = boards.id").
		Where("board_members.user_id = ?", userID).
		Where("boards.board_name ILIKE ?", "%"+query+"%").
		Session(&gorm.Session{})

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, mapError("count boards", err)
	}

	var boards []model.Board
	err := scope.
		Preload("Owner").
		Order("boards.board_name").
		Limit(limit).
		Offset(offset).
		Find(&boards).Error
	if err != nil {
		return nil, 0, mapError("list boards", err)
	}
	return boards, total, nil
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	err := r.db.WithContext(ctx).Model(&model.Board{}).
		Where("id = ?", board.ID).
		Updates(map[string]any{
			"board_name":  board.Name,
			"key":         board.Key,
			"description": board.Description,
		}).Error
	return mapError("update board", err)
}

// Delete removes the board together with its assignments and tasks. Columns,
// members and invitations go through the foreign key cascades.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Board{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
	return mapError("delete board", err)
}
