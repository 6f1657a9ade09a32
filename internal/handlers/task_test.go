package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/dimitrije/teamsync-api/internal/apperrors"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/pkg/dto"
	"github.com/dimitrije/teamsync-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTaskTest() (*testutil.MockTaskService, *testutil.MockAuthorizer, *TaskHandler) {
	tasks := new(testutil.MockTaskService)
	authz := new(testutil.MockAuthorizer)
	return tasks, authz, NewTaskHandler(tasks, authz)
}

func taskFixture(workspaceID, projectID, userID uuid.UUID) *models.Task {
	now := time.Now().UTC()
	return &models.Task{
		ID:          uuid.New(),
		TaskCode:    "task-1a2b3c4d",
		Title:       "Write launch post",
		Status:      models.TaskStatusTodo,
		Priority:    models.TaskPriorityNormal,
		ProjectID:   projectID,
		WorkspaceID: workspaceID,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func tasksPath(workspaceID, projectID uuid.UUID) string {
	return "/workspaces/" + workspaceID.String() + "/projects/" + projectID.String() + "/tasks"
}

func TestTaskHandler_Create(t *testing.T) {
	tasks, authz, handler := setupTaskTest()

	userID, workspaceID, projectID, assignee := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	task := taskFixture(workspaceID, projectID, userID)
	task.Priority = models.TaskPriorityHigh
	task.AssignedTo = &assignee

	authz.On("Authorize", mock.Anything, userID, workspaceID, perms(models.PermissionCreateTask)).Return(roleFixture(models.RoleMember), nil)
	tasks.On("Create", mock.Anything, workspaceID, projectID, userID, models.TaskInput{
		Title:      "Write launch post",
		Priority:   models.TaskPriorityHigh,
		AssignedTo: &assignee,
	}).Return(task, nil)

	client := route(t, http.MethodPost, "/workspaces/:workspaceId/projects/:projectId/tasks", handler.Create, userID)
	rec := client.POST(tasksPath(workspaceID, projectID), dto.TaskRequest{
		Title:      "Write launch post",
		Priority:   "high",
		AssignedTo: &assignee,
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp dto.TaskResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Equal(t, "task-1a2b3c4d", resp.TaskCode)
	assert.Equal(t, "HIGH", resp.Priority)
	tasks.AssertExpectations(t)
}

func TestTaskHandler_Create_AssigneeNotMember(t *testing.T) {
	tasks, authz, handler := setupTaskTest()

	userID, workspaceID, projectID, outsider := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	authz.On("Authorize", mock.Anything, userID, workspaceID, perms(models.PermissionCreateTask)).Return(roleFixture(models.RoleMember), nil)
	tasks.On("Create", mock.Anything, workspaceID, projectID, userID, mock.AnythingOfType("models.TaskInput")).
		Return(nil, apperrors.BadRequest("assigned user is not a member of this workspace"))

	client := route(t, http.MethodPost, "/workspaces/:workspaceId/projects/:projectId/tasks", handler.Create, userID)
	rec := client.POST(tasksPath(workspaceID, projectID), dto.TaskRequest{Title: "T", AssignedTo: &outsider})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not a member of this workspace")
}

func TestTaskHandler_Create_MissingTitle(t *testing.T) {
	tasks, authz, handler := setupTaskTest()

	userID, workspaceID, projectID := uuid.New(), uuid.New(), uuid.New()
	authz.On("Authorize", mock.Anything, userID, workspaceID, perms(models.PermissionCreateTask)).Return(roleFixture(models.RoleMember), nil)

	client := route(t, http.MethodPost, "/workspaces/:workspaceId/projects/:projectId/tasks", handler.Create, userID)
	rec := client.POST(tasksPath(workspaceID, projectID), dto.TaskRequest{Title: "  "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_Update(t *testing.T) {
	tasks, authz, handler := setupTaskTest()

	userID, workspaceID, projectID := uuid.New(), uuid.New(), uuid.New()
	task := taskFixture(workspaceID, projectID, userID)
	task.Status = models.TaskStatusDone

	authz.On("Authorize", mock.Anything, userID, workspaceID, perms(models.PermissionEditTask)).Return(roleFixture(models.RoleMember), nil)
	tasks.On("Update", mock.Anything, workspaceID, projectID, task.ID, models.TaskInput{Status: models.TaskStatusDone}).Return(task, nil)

	client := route(t, http.MethodPatch, "/workspaces/:workspaceId/projects/:projectId/tasks/:taskId", handler.Update, userID)
	rec := client.PATCH(tasksPath(workspaceID, projectID)+"/"+task.ID.String(), dto.TaskRequest{Status: "done"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.TaskResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Equal(t, "DONE", resp.Status)
}

func TestTaskHandler_Get(t *testing.T) {
	tasks, authz, handler := setupTaskTest()

	userID, workspaceID, projectID := uuid.New(), uuid.New(), uuid.New()
	task := taskFixture(workspaceID, projectID, userID)
	authz.On("Authorize", mock.Anything, userID, workspaceID, perms(models.PermissionViewOnly)).Return(roleFixture(models.RoleMember), nil)
	tasks.On("GetByID", mock.Anything, workspaceID, projectID, task.ID).Return(task, nil)

	client := route(t, http.MethodGet, "/workspaces/:workspaceId/projects/:projectId/tasks/:taskId", handler.Get, userID)
	rec := client.GET(tasksPath(workspaceID, projectID) + "/" + task.ID.String())

	require.Equal(t, http.StatusOK, rec.Code)
	tasks.AssertExpectations(t)
}

func TestTaskHandler_Delete_RequiresPermission(t *testing.T) {
	tasks, authz, handler := setupTaskTest()

	userID, workspaceID, taskID := uuid.New(), uuid.New(), uuid.New()
	authz.On("Authorize", mock.Anything, userID, workspaceID, perms(models.PermissionDeleteTask)).
		Return(nil, apperrors.Unauthorized("you do not have the required permissions"))

	client := route(t, http.MethodDelete, "/workspaces/:workspaceId/tasks/:taskId", handler.Delete, userID)
	rec := client.DELETE("/workspaces/" + workspaceID.String() + "/tasks/" + taskID.String())

	assert.Equal(t, http.StatusForbidden, rec.Code)
	tasks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_Delete(t *testing.T) {
	tasks, authz, handler := setupTaskTest()

	userID, workspaceID, taskID := uuid.New(), uuid.New(), uuid.New()
	authz.On("Authorize", mock.Anything, userID, workspaceID, perms(models.PermissionDeleteTask)).Return(roleFixture(models.RoleAdmin), nil)
	tasks.On("Delete", mock.Anything, workspaceID, taskID).Return(nil)

	client := route(t, http.MethodDelete, "/workspaces/:workspaceId/tasks/:taskId", handler.Delete, userID)
	rec := client.DELETE("/workspaces/" + workspaceID.String() + "/tasks/" + taskID.String())

	assert.Equal(t, http.StatusOK, rec.Code)
	tasks.AssertExpectations(t)
}

func TestTaskHandler_List_ParsesFilters(t *testing.T) {
	tasks, authz, handler := setupTaskTest()

	userID, workspaceID, projectID, assignee := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	due := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	want := models.TaskFilter{
		ProjectID:  &projectID,
		Statuses:   []models.TaskStatus{models.TaskStatusTodo, models.TaskStatusInProgress},
		Priorities: []models.TaskPriority{models.TaskPriorityHigh},
		AssignedTo: []uuid.UUID{assignee},
		Keyword:    "launch",
		DueDate:    &due,
	}

	authz.On("Authorize", mock.Anything, userID, workspaceID, perms(models.PermissionViewOnly)).Return(roleFixture(models.RoleMember), nil)
	tasks.On("List", mock.Anything, workspaceID, want, 20, 1).
		Return([]models.Task{*taskFixture(workspaceID, projectID, userID)}, models.NewPagination(20, 1).WithTotal(1), nil)

	client := route(t, http.MethodGet, "/workspaces/:workspaceId/tasks", handler.List, userID)
	rec := client.GET("/workspaces/" + workspaceID.String() + "/tasks?projectId=" + projectID.String() +
		"&status=todo,IN_PROGRESS&priority=HIGH&assignedTo=" + assignee.String() +
		"&keyword=launch&dueDate=2025-03-14&pageSize=20&pageNumber=1")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.TaskListResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Len(t, resp.Tasks, 1)
	assert.Equal(t, int64(1), resp.Pagination.TotalCount)
	tasks.AssertExpectations(t)
}

func TestTaskHandler_List_InvalidFilters(t *testing.T) {
	tests := []struct {
		name  string
		query string
		msg   string
	}{
		{"status", "?status=SOMEDAY", "invalid task status"},
		{"priority", "?priority=URGENT", "invalid task priority"},
		{"assignee", "?assignedTo=bob", "invalid assignee id"},
		{"project", "?projectId=42", "invalid project id"},
		{"due date", "?dueDate=14/03/2025", "dueDate must be formatted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, authz, handler := setupTaskTest()
			userID, workspaceID := uuid.New(), uuid.New()
			authz.On("Authorize", mock.Anything, userID, workspaceID, perms(models.PermissionViewOnly)).Return(roleFixture(models.RoleMember), nil)

			client := route(t, http.MethodGet, "/workspaces/:workspaceId/tasks", handler.List, userID)
			rec := client.GET("/workspaces/" + workspaceID.String() + "/tasks" + tt.query)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
			tasks.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
