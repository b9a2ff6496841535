package handler_test

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(*service.LoginResult), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserService) ListOthers(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.User), args.Error(1)
}

type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) Create(ctx context.Context, ownerID uuid.UUID, in service.CreateBoardInput) (*model.BoardSummary, error) {
	args := m.Called(ctx, ownerID, in)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.BoardSummary), args.Error(1)
}

func (m *MockBoardService) List(ctx context.Context, userID uuid.UUID, query string, page, limit int) (*service.BoardPage, error) {
	args := m.Called(ctx, userID, query, page, limit)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(*service.BoardPage), args.Error(1)
}

func (m *MockBoardService) Get(ctx context.Context, userID, boardID uuid.UUID) (*model.BoardDetail, error) {
	args := m.Called(ctx, userID, boardID)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.BoardDetail), args.Error(1)
}

func (m *MockBoardService) Update(ctx context.Context, userID, boardID uuid.UUID, in service.UpdateBoardInput) (*model.BoardSummary, error) {
	args := m.Called(ctx, userID, boardID, in)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.BoardSummary), args.Error(1)
}

func (m *MockBoardService) Delete(ctx context.Context, userID, boardID uuid.UUID) error {
	args := m.Called(ctx, userID, boardID)
	return args.Error(0)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, userID uuid.UUID, in service.CreateTaskInput) (*model.TaskView, error) {
	args := m.Called(ctx, userID, in)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.TaskView), args.Error(1)
}

func (m *MockTaskService) ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]model.TaskView, error) {
	args := m.Called(ctx, userID, boardID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.TaskView), args.Error(1)
}

func (m *MockTaskService) UpdateOrder(ctx context.Context, userID, boardID uuid.UUID, order []model.TaskOrder) error {
	args := m.Called(ctx, userID, boardID, order)
	return args.Error(0)
}

func (m *MockTaskService) UpdateDescription(ctx context.Context, userID, taskID uuid.UUID, description string) error {
	args := m.Called(ctx, userID, taskID, description)
	return args.Error(0)
}

func (m *MockTaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

type MockInvitationService struct {
	mock.Mock
}

func (m *MockInvitationService) Create(ctx context.Context, senderID, boardID, recipientID uuid.UUID) (string, error) {
	args := m.Called(ctx, senderID, boardID, recipientID)
	return args.String(0), args.Error(1)
}

func (m *MockInvitationService) Accept(ctx context.Context, recipientID, senderID, boardID uuid.UUID) ([]model.InvitationView, error) {
	args := m.Called(ctx, recipientID, senderID, boardID)
	views := args.Get(0)
	if views == nil {
		return nil, args.Error(1)
	}
	return views.([]model.InvitationView), args.Error(1)
}

func (m *MockInvitationService) Decline(ctx context.Context, recipientID, senderID, boardID uuid.UUID) ([]model.InvitationView, error) {
	args := m.Called(ctx, recipientID, senderID, boardID)
	views := args.Get(0)
	if views == nil {
		return nil, args.Error(1)
	}
	return views.([]model.InvitationView), args.Error(1)
}

func (m *MockInvitationService) MarkSeen(ctx context.Context, recipientID uuid.UUID) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) AssignToMember(ctx context.Context, callerID, taskID uuid.UUID, recipientEmail string) error {
	args := m.Called(ctx, callerID, taskID, recipientEmail)
	return args.Error(0)
}

func (m *MockAssignmentService) MarkSeen(ctx context.Context, assigneeID uuid.UUID) error {
	args := m.Called(ctx, assigneeID)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID uuid.UUID) (*service.Notifications, error) {
	args := m.Called(ctx, userID)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(*service.Notifications), args.Error(1)
}
