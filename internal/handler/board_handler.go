package handler

import (
	"net/http"
	"strconv"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boards      BoardService
	invitations InvitationService
}

func NewBoardHandler(boards BoardService, invitations InvitationService) *BoardHandler {
	return &BoardHandler{boards: boards, invitations: invitations}
}

type InvitedMember struct {
	ID uuid.UUID `json:"id" binding:"required"`
}

type CreateBoardRequest struct {
	Name           string          `json:"board_name" binding:"required"`
	Key            string          `json:"key" binding:"required"`
	Description    *string         `json:"description"`
	InvitedMembers []InvitedMember `json:"invited_members" binding:"dive"`
}

type UpdateBoardRequest struct {
	Name        string  `json:"board_name"`
	Key         string  `json:"key"`
	Description *string `json:"description"`
}

type InviteRequest struct {
	RecipientID uuid.UUID `json:"recipient_id" binding:"required"`
}

// @Summary      Create a board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        body  body  handler.CreateBoardRequest  true  "Board"
// @Success      201  {object}  model.BoardSummary
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /board [post]
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	invited := make([]uuid.UUID, len(req.InvitedMembers))
	for i, m := range req.InvitedMembers {
		invited[i] = m.ID
	}
	board, err := h.boards.Create(c.Request.Context(), userID, service.CreateBoardInput{
		Name:           req.Name,
		Key:            req.Key,
		Description:    req.Description,
		InvitedMembers: invited,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// List pages through the caller's boards, filtered by ?query=.
//
// @Summary      List boards of the caller
// @Tags         Boards
// @Produce      json
// @Param        query  query  string  false  "Name filter"
// @Param        numOfPage  query  int  false  "Page, starting at 1"
// @Param        limit  query  int  false  "Boards per page"
// @Success      200  {object}  service.BoardPage
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /board [get]
func (h *BoardHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("numOfPage", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	result, err := h.boards.List(c.Request.Context(), userID, c.Query("query"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary      Get a board
// @Tags         Boards
// @Produce      json
// @Param        board_id  path  string  true  "Board ID"
// @Success      200  {object}  model.BoardDetail
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /board/{board_id} [get]
func (h *BoardHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "board_id")
	if !ok {
		return
	}

	board, err := h.boards.Get(c.Request.Context(), userID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// @Summary      Update a board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        board_id  path  string  true  "Board ID"
// @Param        body  body  handler.UpdateBoardRequest  true  "Fields to replace"
// @Success      200  {object}  model.BoardSummary
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /board/{board_id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "board_id")
	if !ok {
		return
	}
	var req UpdateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boards.Update(c.Request.Context(), userID, boardID, service.UpdateBoardInput{
		Name:        req.Name,
		Key:         req.Key,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// @Summary      Delete a board
// @Tags         Boards
// @Produce      json
// @Param        board_id  path  string  true  "Board ID"
// @Success      200  {object}  handler.MessageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /board/{board_id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "board_id")
	if !ok {
		return
	}

	if err := h.boards.Delete(c.Request.Context(), userID, boardID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Board deleted"})
}

// Invite sends a board invitation from the owner to recipient_id.
//
// @Summary      Invite a user to a board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        board_id  path  string  true  "Board ID"
// @Param        body  body  handler.InviteRequest  true  "Recipient"
// @Success      200  {object}  handler.MessageResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /board/{board_id}/invite [post]
func (h *BoardHandler) Invite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "board_id")
	if !ok {
		return
	}
	var req InviteRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.invitations.Create(c.Request.Context(), userID, boardID, req.RecipientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}
