package handlers

import (
	"strings"

	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type ProjectHandler struct {
	projectService ProjectServiceInterface
	authorizer     AuthorizerInterface
}

func NewProjectHandler(projectService ProjectServiceInterface, authorizer AuthorizerInterface) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		authorizer:     authorizer,
	}
}

func (h *ProjectHandler) Create(c *drift.Context) {
	userID, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionCreateProject)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), workspaceID, userID, req.Name, req.Emoji, req.Description)
	if err != nil {
		respondError(c, err, "failed to create project")
		return
	}

	_ = c.JSON(201, toProjectResponse(project))
}

func (h *ProjectHandler) List(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionViewOnly)
	if !ok {
		return
	}

	projects, page, err := h.projectService.List(c.Request.Context(), workspaceID, intQuery(c, "pageSize"), intQuery(c, "pageNumber"))
	if err != nil {
		respondError(c, err, "failed to list projects")
		return
	}

	response := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		response[i] = toProjectResponse(&projects[i])
	}

	_ = c.JSON(200, dto.ProjectListResponse{
		Projects:   response,
		Pagination: toPaginationResponse(page),
	})
}

func (h *ProjectHandler) Get(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionViewOnly)
	if !ok {
		return
	}

	projectID, ok := uuidParam(c, "projectId", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), workspaceID, projectID)
	if err != nil {
		respondError(c, err, "failed to get project")
		return
	}

	_ = c.JSON(200, toProjectResponse(project))
}

func (h *ProjectHandler) Analytics(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionViewOnly)
	if !ok {
		return
	}

	projectID, ok := uuidParam(c, "projectId", "project")
	if !ok {
		return
	}

	analytics, err := h.projectService.Analytics(c.Request.Context(), workspaceID, projectID)
	if err != nil {
		respondError(c, err, "failed to get project analytics")
		return
	}

	_ = c.JSON(200, toAnalyticsResponse(analytics))
}

func (h *ProjectHandler) Update(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionEditProject)
	if !ok {
		return
	}

	projectID, ok := uuidParam(c, "projectId", "project")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" && req.Emoji == nil && req.Description == nil {
		c.BadRequest("nothing to update")
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), workspaceID, projectID, req.Name, req.Emoji, req.Description)
	if err != nil {
		respondError(c, err, "failed to update project")
		return
	}

	_ = c.JSON(200, toProjectResponse(project))
}

// Delete removes the project together with all of its tasks.
func (h *ProjectHandler) Delete(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionDeleteProject)
	if !ok {
		return
	}

	projectID, ok := uuidParam(c, "projectId", "project")
	if !ok {
		return
	}

	if _, err := h.projectService.Delete(c.Request.Context(), workspaceID, projectID); err != nil {
		respondError(c, err, "failed to delete project")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "project deleted"})
}
