package handler

import (
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks       TaskService
	assignments AssignmentService
}

func NewTaskHandler(tasks TaskService, assignments AssignmentService) *TaskHandler {
	return &TaskHandler{tasks: tasks, assignments: assignments}
}

type CreateTaskRequest struct {
	Description string    `json:"description" binding:"required"`
	BoardID     uuid.UUID `json:"board_id" binding:"required"`
	ColumnID    uuid.UUID `json:"column_id" binding:"required"`
}

type UpdateTaskRequest struct {
	Description string `json:"description"`
}

type TaskOrderItem struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	BoardID  uuid.UUID `json:"board_id" binding:"required"`
	ColumnID uuid.UUID `json:"column_id" binding:"required"`
}

type UpdateOrderRequest struct {
	TasksOrder []TaskOrderItem `json:"tasks_order" binding:"dive"`
}

type AssignRequest struct {
	RecipientEmail string `json:"recipient_email"`
}

// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        body  body  handler.CreateTaskRequest  true  "Task"
// @Success      201  {object}  model.TaskView
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /task [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, service.CreateTaskInput{
		Description: req.Description,
		BoardID:     req.BoardID,
		ColumnID:    req.ColumnID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// ListByBoard returns the board's tasks in display order.
//
// @Summary      List tasks of a board
// @Tags         Tasks
// @Produce      json
// @Param        id  path  string  true  "Board ID"
// @Success      200  {array}  model.TaskView
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /task/{id}/board [get]
func (h *TaskHandler) ListByBoard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.tasks.ListByBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// UpdateOrder applies a drag-and-drop snapshot of the board and returns the
// resulting order.
//
// @Summary      Reorder the tasks of a board
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Board ID"
// @Param        body  body  handler.UpdateOrderRequest  true  "New order"
// @Success      200  {array}  model.TaskView
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /task/{id}/board [put]
func (h *TaskHandler) UpdateOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order := make([]model.TaskOrder, len(req.TasksOrder))
	for i, item := range req.TasksOrder {
		order[i] = model.TaskOrder{TaskID: item.ID, BoardID: item.BoardID, ColumnID: item.ColumnID}
	}
	ctx := c.Request.Context()
	if err := h.tasks.UpdateOrder(ctx, userID, boardID, order); err != nil {
		respondError(c, err)
		return
	}
	tasks, err := h.tasks.ListByBoard(ctx, userID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Update a task description
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Param        body  body  handler.UpdateTaskRequest  true  "Description"
// @Success      200  {object}  handler.MessageResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /task/{id} [put]
func (h *TaskHandler) UpdateDescription(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.tasks.UpdateDescription(c.Request.Context(), userID, taskID, req.Description); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Task updated"})
}

// @Summary      Delete a task
// @Tags         Tasks
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  handler.MessageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /task/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

// Assign hands the task to the board member with recipient_email.
//
// @Summary      Assign a task to a board member
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Param        body  body  handler.AssignRequest  true  "Recipient e-mail"
// @Success      200  {object}  handler.MessageResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /task/{id}/assign [put]
func (h *TaskHandler) Assign(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req AssignRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.assignments.AssignToMember(c.Request.Context(), userID, taskID, req.RecipientEmail); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Task assigned"})
}
