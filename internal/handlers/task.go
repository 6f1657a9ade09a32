package handlers

import (
	"strings"
	"time"

	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const dueDateLayout = "2006-01-02"

type TaskHandler struct {
	taskService TaskServiceInterface
	authorizer  AuthorizerInterface
}

func NewTaskHandler(taskService TaskServiceInterface, authorizer AuthorizerInterface) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		authorizer:  authorizer,
	}
}

func toTaskInput(req dto.TaskRequest) models.TaskInput {
	return models.TaskInput{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      models.TaskStatus(strings.ToUpper(req.Status)),
		Priority:    models.TaskPriority(strings.ToUpper(req.Priority)),
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}
}

func (h *TaskHandler) Create(c *drift.Context) {
	userID, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionCreateTask)
	if !ok {
		return
	}

	projectID, ok := uuidParam(c, "projectId", "project")
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	in := toTaskInput(req)
	if in.Title == "" {
		c.BadRequest("title is required")
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), workspaceID, projectID, userID, in)
	if err != nil {
		respondError(c, err, "failed to create task")
		return
	}

	_ = c.JSON(201, toTaskResponse(task))
}

func (h *TaskHandler) Update(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionEditTask)
	if !ok {
		return
	}

	projectID, ok := uuidParam(c, "projectId", "project")
	if !ok {
		return
	}
	taskID, ok := uuidParam(c, "taskId", "task")
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), workspaceID, projectID, taskID, toTaskInput(req))
	if err != nil {
		respondError(c, err, "failed to update task")
		return
	}

	_ = c.JSON(200, toTaskResponse(task))
}

func (h *TaskHandler) Get(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionViewOnly)
	if !ok {
		return
	}

	projectID, ok := uuidParam(c, "projectId", "project")
	if !ok {
		return
	}
	taskID, ok := uuidParam(c, "taskId", "task")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), workspaceID, projectID, taskID)
	if err != nil {
		respondError(c, err, "failed to get task")
		return
	}

	_ = c.JSON(200, toTaskResponse(task))
}

func (h *TaskHandler) Delete(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionDeleteTask)
	if !ok {
		return
	}

	taskID, ok := uuidParam(c, "taskId", "task")
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), workspaceID, taskID); err != nil {
		respondError(c, err, "failed to delete task")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "task deleted"})
}

// List returns the workspace's tasks. Query parameters: projectId, status,
// priority and assignedTo (comma separated), keyword, dueDate (YYYY-MM-DD),
// pageSize and pageNumber.
func (h *TaskHandler) List(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionViewOnly)
	if !ok {
		return
	}

	filter, ok := parseTaskFilter(c)
	if !ok {
		return
	}

	tasks, page, err := h.taskService.List(c.Request.Context(), workspaceID, filter, intQuery(c, "pageSize"), intQuery(c, "pageNumber"))
	if err != nil {
		respondError(c, err, "failed to list tasks")
		return
	}

	response := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = toTaskResponse(&tasks[i])
	}

	_ = c.JSON(200, dto.TaskListResponse{
		Tasks:      response,
		Pagination: toPaginationResponse(page),
	})
}

func parseTaskFilter(c *drift.Context) (models.TaskFilter, bool) {
	var filter models.TaskFilter

	if raw := c.QueryParam("projectId"); raw != "" {
		projectID, err := uuid.Parse(raw)
		if err != nil {
			c.BadRequest("invalid project id")
			return filter, false
		}
		filter.ProjectID = &projectID
	}

	for _, s := range csvQuery(c, "status") {
		status := models.TaskStatus(strings.ToUpper(s))
		if !status.Valid() {
			c.BadRequest("invalid task status: " + s)
			return filter, false
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	for _, p := range csvQuery(c, "priority") {
		priority := models.TaskPriority(strings.ToUpper(p))
		if !priority.Valid() {
			c.BadRequest("invalid task priority: " + p)
			return filter, false
		}
		filter.Priorities = append(filter.Priorities, priority)
	}

	for _, a := range csvQuery(c, "assignedTo") {
		assignee, err := uuid.Parse(a)
		if err != nil {
			c.BadRequest("invalid assignee id: " + a)
			return filter, false
		}
		filter.AssignedTo = append(filter.AssignedTo, assignee)
	}

	filter.Keyword = strings.TrimSpace(c.QueryParam("keyword"))

	if raw := c.QueryParam("dueDate"); raw != "" {
		due, err := time.Parse(dueDateLayout, raw)
		if err != nil {
			c.BadRequest("dueDate must be formatted as YYYY-MM-DD")
			return filter, false
		}
		filter.DueDate = &due
	}

	return filter, true
}
