package service

import (
	"context"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

type UserService struct {
	users repository.UserRepositoryInterface
}

func NewUserService(users repository.UserRepositoryInterface) *UserService {
	return &UserService{users: users}
}

// ListOthers returns every user except userID.
func (s *UserService) ListOthers(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	users, err := s.users.ListExcept(ctx, userID)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NewUnauthenticated("User not found")
	}
	return user, nil
}
