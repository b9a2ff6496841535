package handler_test

import (
	"net/http"
	"testing"

	"taskboard/internal/apperr"
	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTasks(userID uuid.UUID) (http.Handler, *MockTaskService, *MockAssignmentService) {
	r := newRouter(userID)
	tasks := new(MockTaskService)
	assignments := new(MockAssignmentService)
	h := handler.NewTaskHandler(tasks, assignments)
	r.POST("/task", h.Create)
	r.PUT("/task/:id", h.UpdateDescription)
	r.DELETE("/task/:id", h.Delete)
	r.GET("/task/:id/board", h.ListByBoard)
	r.PUT("/task/:id/board", h.UpdateOrder)
	r.PUT("/task/:id/assign", h.Assign)
	return r, tasks, assignments
}

func TestTaskCreate_Success(t *testing.T) {
	// Arrange
	userID, boardID, columnID := uuid.New(), uuid.New(), uuid.New()
	router, tasks, _ := setupTasks(userID)
	in := service.CreateTaskInput{Description: "Fix bug", BoardID: boardID, ColumnID: columnID}
	tasks.On("Create", mock.Anything, userID, in).
		Return(&model.TaskView{ID: uuid.New(), Description: "Fix bug", Sequence: 1, Position: 1}, nil)

	// Act
	resp := perform(router, http.MethodPost, "/task", handler.CreateTaskRequest{
		Description: "Fix bug",
		BoardID:     boardID,
		ColumnID:    columnID,
	})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"sequence":1`)
	tasks.AssertExpectations(t)
}

func TestTaskCreate_MissingColumn(t *testing.T) {
	router, tasks, _ := setupTasks(uuid.New())

	resp := perform(router, http.MethodPost, "/task", map[string]string{
		"description": "Fix bug",
		"board_id":    uuid.NewString(),
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskUpdateOrder_Success(t *testing.T) {
	// Arrange
	userID, boardID, columnID := uuid.New(), uuid.New(), uuid.New()
	first, second := uuid.New(), uuid.New()
	router, tasks, _ := setupTasks(userID)
	order := []model.TaskOrder{
		{TaskID: second, BoardID: boardID, ColumnID: columnID},
		{TaskID: first, BoardID: boardID, ColumnID: columnID},
	}
	tasks.On("UpdateOrder", mock.Anything, userID, boardID, order).Return(nil)
	tasks.On("ListByBoard", mock.Anything, userID, boardID).Return([]model.TaskView{
		{ID: second, Position: 1},
		{ID: first, Position: 2},
	}, nil)

	// Act
	resp := perform(router, http.MethodPut, "/task/"+boardID.String()+"/board", map[string]any{
		"tasks_order": []handler.TaskOrderItem{
			{ID: second, BoardID: boardID, ColumnID: columnID},
			{ID: first, BoardID: boardID, ColumnID: columnID},
		},
	})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	tasks.AssertExpectations(t)
}

func TestTaskUpdateOrder_Rejected(t *testing.T) {
	userID, boardID := uuid.New(), uuid.New()
	router, tasks, _ := setupTasks(userID)
	tasks.On("UpdateOrder", mock.Anything, userID, boardID, mock.Anything).
		Return(apperr.NewBadInput("tasks order is not valid"))

	resp := perform(router, http.MethodPut, "/task/"+boardID.String()+"/board", map[string]any{
		"tasks_order": []handler.TaskOrderItem{{ID: uuid.New(), BoardID: uuid.New(), ColumnID: uuid.New()}},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "tasks order is not valid", decodeError(t, resp))
	tasks.AssertNotCalled(t, "ListByBoard", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskAssign(t *testing.T) {
	userID, taskID := uuid.New(), uuid.New()

	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "assigned", err: nil, status: http.StatusOK},
		{name: "recipient not member", err: apperr.NewUnauthorized("Recipient user is not a board member"), status: http.StatusForbidden},
		{name: "unknown recipient", err: apperr.NewNotFound("Not found recipient user"), status: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, _, assignments := setupTasks(userID)
			assignments.On("AssignToMember", mock.Anything, userID, taskID, "bob@x.io").Return(tc.err)

			resp := perform(router, http.MethodPut, "/task/"+taskID.String()+"/assign", handler.AssignRequest{RecipientEmail: "bob@x.io"})

			assert.Equal(t, tc.status, resp.Code)
			assignments.AssertExpectations(t)
		})
	}
}

func TestTaskDelete(t *testing.T) {
	userID, taskID := uuid.New(), uuid.New()
	router, tasks, _ := setupTasks(userID)
	tasks.On("Delete", mock.Anything, userID, taskID).Return(nil)

	resp := perform(router, http.MethodDelete, "/task/"+taskID.String(), nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	tasks.AssertExpectations(t)
}
