package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ColumnHandler struct {
	columns ColumnService
}

func NewColumnHandler(columns ColumnService) *ColumnHandler {
	return &ColumnHandler{columns: columns}
}

type CreateColumnRequest struct {
	Name    string    `json:"column_name" binding:"required"`
	BoardID uuid.UUID `json:"board_id" binding:"required"`
}

type RenameColumnRequest struct {
	Name string `json:"column_name"`
}

// @Summary      Create a column
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Param        body  body  handler.CreateColumnRequest  true  "Column"
// @Success      201  {object}  model.Column
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /column [post]
func (h *ColumnHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateColumnRequest
	if !bindJSON(c, &req) {
		return
	}

	column, err := h.columns.Create(c.Request.Context(), userID, req.BoardID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, column)
}

// @Summary      Rename a column
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Param        column_id  path  string  true  "Column ID"
// @Param        body  body  handler.RenameColumnRequest  true  "New name"
// @Success      200  {object}  model.Column
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /column/{column_id} [put]
func (h *ColumnHandler) Rename(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathUUID(c, "column_id")
	if !ok {
		return
	}
	var req RenameColumnRequest
	if !bindJSON(c, &req) {
		return
	}

	column, err := h.columns.Rename(c.Request.Context(), userID, columnID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, column)
}

// Delete removes the column and every task in it.
//
// @Summary      Delete a column
// @Tags         Columns
// @Produce      json
// @Param        column_id  path  string  true  "Column ID"
// @Success      200  {object}  handler.MessageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /column/{column_id} [delete]
func (h *ColumnHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathUUID(c, "column_id")
	if !ok {
		return
	}

	if err := h.columns.Delete(c.Request.Context(), userID, columnID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Column deleted"})
}
