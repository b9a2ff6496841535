package repository

import (
	"context"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepository struct {
	db *gorm.DB
}

type MemberRepositoryInterface interface {
	IsMember(ctx context.Context, userID, boardID uuid.UUID) (bool, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.MemberView, error)
}

var _ MemberRepositoryInterface = (*MemberRepository)(nil)

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) IsMember(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BoardMember{}).
		Where("user_id = ? AND board_id = ?", userID, boardID).
		Count(&count).Error
	if err != nil {
		return false, mapError("check membership", err)
	}
	return count > 0, nil
}

// addMember records the membership inside tx. Adding an existing member is a
// no-op.
func addMember(tx *gorm.DB, userID, boardID uuid.UUID) error {
	member := model.BoardMember{BoardID: boardID, UserID: userID}
	return tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&member).Error
}

func (r *MemberRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.MemberView, error) {
	var members []model.MemberView
	err := r.db.WithContext(ctx).Model(&model.BoardMember{}).
		Select("board_members.user_id, users.email, users.display_name").
		Joins("JOIN users ON users.id = board_members.user_id").
		Where("board_members.board_id = ?", boardID).
		Order("users.email").
		Scan(&members).Error
	return members, mapError("list members", err)
}
