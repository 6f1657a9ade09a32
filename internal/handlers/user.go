package handlers

import (
	"strings"

	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type UserHandler struct {
	userService UserServiceInterface
	authorizer  AuthorizerInterface
}

func NewUserHandler(userService UserServiceInterface, authorizer AuthorizerInterface) *UserHandler {
	return &UserHandler{userService: userService, authorizer: authorizer}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get user")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *drift.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), userID, req.Name, req.ProfilePicture)
	if err != nil {
		respondError(c, err, "failed to update user")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

// SwitchWorkspace moves the caller's current workspace pointer. The caller
// must be a member of the target workspace.
func (h *UserHandler) SwitchWorkspace(c *drift.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.SwitchWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.WorkspaceID == uuid.Nil {
		c.BadRequest("workspace_id is required")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.authorizer.Authorize(ctx, userID, req.WorkspaceID, models.PermissionViewOnly); err != nil {
		respondError(c, err, "failed to switch workspace")
		return
	}

	user, err := h.userService.SetCurrentWorkspace(ctx, userID, req.WorkspaceID)
	if err != nil {
		respondError(c, err, "failed to switch workspace")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}
