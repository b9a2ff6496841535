// Package handler exposes the board services over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"taskboard/internal/apperr"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

type UserService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.User, error)
	ListOthers(ctx context.Context, userID uuid.UUID) ([]model.User, error)
}

type BoardService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in service.CreateBoardInput) (*model.BoardSummary, error)
	List(ctx context.Context, userID uuid.UUID, query string, page, limit int) (*service.BoardPage, error)
	Get(ctx context.Context, userID, boardID uuid.UUID) (*model.BoardDetail, error)
	Update(ctx context.Context, userID, boardID uuid.UUID, in service.UpdateBoardInput) (*model.BoardSummary, error)
	Delete(ctx context.Context, userID, boardID uuid.UUID) error
}

type ColumnService interface {
	Create(ctx context.Context, userID, boardID uuid.UUID, name string) (*model.Column, error)
	Rename(ctx context.Context, userID, columnID uuid.UUID, name string) (*model.Column, error)
	Delete(ctx context.Context, userID, columnID uuid.UUID) error
}

type TaskService interface {
	Create(ctx context.Context, userID uuid.UUID, in service.CreateTaskInput) (*model.TaskView, error)
	ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]model.TaskView, error)
	UpdateOrder(ctx context.Context, userID, boardID uuid.UUID, order []model.TaskOrder) error
	UpdateDescription(ctx context.Context, userID, taskID uuid.UUID, description string) error
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

type InvitationService interface {
	Create(ctx context.Context, senderID, boardID, recipientID uuid.UUID) (string, error)
	Accept(ctx context.Context, recipientID, senderID, boardID uuid.UUID) ([]model.InvitationView, error)
	Decline(ctx context.Context, recipientID, senderID, boardID uuid.UUID) ([]model.InvitationView, error)
	MarkSeen(ctx context.Context, recipientID uuid.UUID) error
}

type AssignmentService interface {
	AssignToMember(ctx context.Context, callerID, taskID uuid.UUID, recipientEmail string) error
	MarkSeen(ctx context.Context, assigneeID uuid.UUID) error
}

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID) (*service.Notifications, error)
}

var (
	_ AuthService         = (*service.AuthService)(nil)
	_ UserService         = (*service.UserService)(nil)
	_ BoardService        = (*service.BoardService)(nil)
	_ ColumnService       = (*service.ColumnService)(nil)
	_ TaskService         = (*service.TaskService)(nil)
	_ InvitationService   = (*service.InvitationService)(nil)
	_ AssignmentService   = (*service.AssignmentService)(nil)
	_ NotificationService = (*service.NotificationService)(nil)
)

type MessageResponse struct {
	Message string `json:"message"`
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.BadInput:
		return http.StatusBadRequest
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Unauthorized, apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": message}. Untyped errors are logged
// and reported as a generic internal error.
func respondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperr.Internal {
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("internal error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(statusFor(appErr.Kind), gin.H{"error": appErr.Message})
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	}
	return userID, ok
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Please provide all value"})
		return false
	}
	return true
}
