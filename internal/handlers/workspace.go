package handlers

import (
	"strings"

	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type WorkspaceHandler struct {
	workspaceService WorkspaceServiceInterface
	authorizer       AuthorizerInterface
}

func NewWorkspaceHandler(workspaceService WorkspaceServiceInterface, authorizer AuthorizerInterface) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		authorizer:       authorizer,
	}
}

func (h *WorkspaceHandler) Create(c *drift.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	workspace, err := h.workspaceService.Create(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondError(c, err, "failed to create workspace")
		return
	}

	_ = c.JSON(201, toWorkspaceResponse(workspace, models.RoleOwner))
}

func (h *WorkspaceHandler) List(c *drift.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	workspaces, err := h.workspaceService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get workspaces")
		return
	}

	response := make([]dto.WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		response[i] = toWorkspaceResponse(&workspaces[i].Workspace, workspaces[i].Role)
	}

	_ = c.JSON(200, response)
}

func (h *WorkspaceHandler) Get(c *drift.Context) {
	_, workspaceID, role, ok := authorizeWorkspace(c, h.authorizer, models.PermissionViewOnly)
	if !ok {
		return
	}

	workspace, members, err := h.workspaceService.GetWithMembers(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, err, "failed to get workspace")
		return
	}

	_ = c.JSON(200, dto.WorkspaceDetailResponse{
		WorkspaceResponse: toWorkspaceResponse(workspace, role.Name),
		Members:           toMemberResponses(members),
	})
}

func (h *WorkspaceHandler) Update(c *drift.Context) {
	_, workspaceID, role, ok := authorizeWorkspace(c, h.authorizer, models.PermissionEditWorkspace)
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" && req.Description == nil {
		c.BadRequest("nothing to update")
		return
	}

	workspace, err := h.workspaceService.Update(c.Request.Context(), workspaceID, req.Name, req.Description)
	if err != nil {
		respondError(c, err, "failed to update workspace")
		return
	}

	_ = c.JSON(200, toWorkspaceResponse(workspace, role.Name))
}

// Delete removes the workspace with all of its projects, tasks and members.
// Only the owner may do this; the response carries the caller's new current
// workspace, which is null when they have none left.
func (h *WorkspaceHandler) Delete(c *drift.Context) {
	userID, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionDeleteWorkspace)
	if !ok {
		return
	}

	current, err := h.workspaceService.Delete(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondError(c, err, "failed to delete workspace")
		return
	}

	_ = c.JSON(200, dto.DeleteWorkspaceResponse{
		Message:            "workspace deleted",
		CurrentWorkspaceID: current,
	})
}

func (h *WorkspaceHandler) GetMembers(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionViewOnly)
	if !ok {
		return
	}

	members, roles, err := h.workspaceService.GetMembers(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, err, "failed to get members")
		return
	}

	roleResponses := make([]dto.RoleResponse, len(roles))
	for i, r := range roles {
		roleResponses[i] = dto.RoleResponse{ID: r.ID, Name: string(r.Name)}
	}

	_ = c.JSON(200, dto.MembersResponse{
		Members: toMemberResponses(members),
		Roles:   roleResponses,
	})
}

func (h *WorkspaceHandler) ChangeMemberRole(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionChangeMemberRole)
	if !ok {
		return
	}

	memberUserID, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}

	var req dto.ChangeMemberRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RoleID == uuid.Nil {
		c.BadRequest("role_id is required")
		return
	}

	member, err := h.workspaceService.ChangeMemberRole(c.Request.Context(), workspaceID, memberUserID, req.RoleID)
	if err != nil {
		respondError(c, err, "failed to change member role")
		return
	}

	_ = c.JSON(200, toMemberResponse(member))
}

func (h *WorkspaceHandler) RemoveMember(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionRemoveMember)
	if !ok {
		return
	}

	memberUserID, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveMember(c.Request.Context(), workspaceID, memberUserID); err != nil {
		respondError(c, err, "failed to remove member")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "member removed"})
}

func (h *WorkspaceHandler) Analytics(c *drift.Context) {
	_, workspaceID, _, ok := authorizeWorkspace(c, h.authorizer, models.PermissionViewOnly)
	if !ok {
		return
	}

	analytics, err := h.workspaceService.Analytics(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, err, "failed to get workspace analytics")
		return
	}

	_ = c.JSON(200, toAnalyticsResponse(analytics))
}

func (h *WorkspaceHandler) ResetInviteCode(c *drift.Context) {
	_, workspaceID, role, ok := authorizeWorkspace(c, h.authorizer, models.PermissionAddMember)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.ResetInviteCode(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, err, "failed to reset invite code")
		return
	}

	_ = c.JSON(200, toWorkspaceResponse(workspace, role.Name))
}

// Join adds the caller to the workspace behind :inviteCode as a MEMBER.
func (h *WorkspaceHandler) Join(c *drift.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	code := strings.TrimSpace(c.Param("inviteCode"))
	if code == "" {
		c.BadRequest("invite code is required")
		return
	}

	workspace, role, err := h.workspaceService.JoinByInviteCode(c.Request.Context(), userID, code)
	if err != nil {
		respondError(c, err, "failed to join workspace")
		return
	}

	_ = c.JSON(200, toWorkspaceResponse(workspace, role))
}
