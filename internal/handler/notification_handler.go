package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler serves the invitation and assignment inboxes.
type NotificationHandler struct {
	invitations   InvitationService
	assignments   AssignmentService
	notifications NotificationService
}

func NewNotificationHandler(invitations InvitationService, assignments AssignmentService, notifications NotificationService) *NotificationHandler {
	return &NotificationHandler{
		invitations:   invitations,
		assignments:   assignments,
		notifications: notifications,
	}
}

type InvitationReplyRequest struct {
	SenderID uuid.UUID `json:"sender_id" binding:"required"`
	BoardID  uuid.UUID `json:"board_id" binding:"required"`
}

// @Summary      List invitations, assignments and unread counts
// @Tags         Notifications
// @Produce      json
// @Success      200  {object}  service.Notifications
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /notification [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.notifications.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary      Accept a board invitation
// @Tags         Notifications
// @Accept       json
// @Produce      json
// @Param        body  body  handler.InvitationReplyRequest  true  "Invitation"
// @Success      200  {array}  model.InvitationView
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /invitation/accept [put]
func (h *NotificationHandler) AcceptInvitation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req InvitationReplyRequest
	if !bindJSON(c, &req) {
		return
	}

	invitations, err := h.invitations.Accept(c.Request.Context(), userID, req.SenderID, req.BoardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invitations)
}

// @Summary      Decline a board invitation
// @Tags         Notifications
// @Accept       json
// @Produce      json
// @Param        body  body  handler.InvitationReplyRequest  true  "Invitation"
// @Success      200  {array}  model.InvitationView
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /invitation/decline [put]
func (h *NotificationHandler) DeclineInvitation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req InvitationReplyRequest
	if !bindJSON(c, &req) {
		return
	}

	invitations, err := h.invitations.Decline(c.Request.Context(), userID, req.SenderID, req.BoardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invitations)
}

// @Summary      Mark all invitations as seen
// @Tags         Notifications
// @Produce      json
// @Success      200  {object}  handler.MessageResponse
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /invitation [put]
func (h *NotificationHandler) MarkInvitationsSeen(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.invitations.MarkSeen(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Invitations marked as seen"})
}

// @Summary      Mark all assignments as seen
// @Tags         Notifications
// @Produce      json
// @Success      200  {object}  handler.MessageResponse
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /assignment [put]
func (h *NotificationHandler) MarkAssignmentsSeen(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.assignments.MarkSeen(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Assignments marked as seen"})
}
