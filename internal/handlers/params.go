package handlers

import (
	"strconv"
	"strings"

	"github.com/dimitrije/teamsync-api/internal/middleware"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

// requireUser returns the authenticated user id, answering 401 when the
// request carries none.
func requireUser(c *drift.Context) (uuid.UUID, bool) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return uuid.Nil, false
	}
	return userID, true
}

func uuidParam(c *drift.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.BadRequest("invalid " + label + " id")
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *drift.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

// csvQuery splits a comma separated query value, dropping empty entries.
func csvQuery(c *drift.Context, name string) []string {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// authorizeWorkspace parses :workspaceId and checks the caller's permissions
// in it. It writes the error response itself and reports whether to continue.
func authorizeWorkspace(c *drift.Context, authorizer AuthorizerInterface, required ...models.Permission) (uuid.UUID, uuid.UUID, *models.Role, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return uuid.Nil, uuid.Nil, nil, false
	}

	workspaceID, ok := uuidParam(c, "workspaceId", "workspace")
	if !ok {
		return uuid.Nil, uuid.Nil, nil, false
	}

	role, err := authorizer.Authorize(c.Request.Context(), userID, workspaceID, required...)
	if err != nil {
		respondError(c, err, "failed to authorize request")
		return uuid.Nil, uuid.Nil, nil, false
	}
	return userID, workspaceID, role, true
}
