package handlers

import (
	"net/http"
	"testing"

	"github.com/dimitrije/teamsync-api/internal/apperrors"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/pkg/dto"
	"github.com/dimitrije/teamsync-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupUserTest() (*testutil.MockUserService, *testutil.MockAuthorizer, *UserHandler) {
	users := new(testutil.MockUserService)
	authz := new(testutil.MockAuthorizer)
	return users, authz, NewUserHandler(users, authz)
}

func TestUserHandler_GetMe(t *testing.T) {
	users, _, handler := setupUserTest()

	current := uuid.New()
	user := &models.User{ID: uuid.New(), Email: "ada@example.com", Name: "Ada", Provider: models.ProviderEmail, CurrentWorkspaceID: &current}
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	client := route(t, http.MethodGet, "/users/me", handler.GetMe, user.ID)
	rec := client.GET("/users/me")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.UserResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, &current, resp.CurrentWorkspaceID)
	assert.NotContains(t, rec.Body.String(), "password")
	users.AssertExpectations(t)
}

func TestUserHandler_GetMe_WithoutIdentity(t *testing.T) {
	users, _, handler := setupUserTest()

	client := publicRoute(t, http.MethodGet, "/users/me", handler.GetMe)
	rec := client.GET("/users/me")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "not authenticated")
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUserHandler_GetMe_NotFound(t *testing.T) {
	users, _, handler := setupUserTest()
	userID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(nil, apperrors.NotFound("user not found"))

	client := route(t, http.MethodGet, "/users/me", handler.GetMe, userID)
	rec := client.GET("/users/me")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_UpdateMe(t *testing.T) {
	users, _, handler := setupUserTest()

	userID := uuid.New()
	picture := "https://cdn.example.com/ada.png"
	updated := &models.User{ID: userID, Email: "ada@example.com", Name: "Ada L.", ProfilePicture: &picture}
	users.On("Update", mock.Anything, userID, "Ada L.", &picture).Return(updated, nil)

	client := route(t, http.MethodPatch, "/users/me", handler.UpdateMe, userID)
	rec := client.PATCH("/users/me", dto.UpdateUserRequest{Name: " Ada L. ", ProfilePicture: &picture})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.UserResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Equal(t, "Ada L.", resp.Name)
	users.AssertExpectations(t)
}

func TestUserHandler_UpdateMe_EmptyName(t *testing.T) {
	users, _, handler := setupUserTest()

	client := route(t, http.MethodPatch, "/users/me", handler.UpdateMe, uuid.New())
	rec := client.PATCH("/users/me", dto.UpdateUserRequest{Name: "   "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserHandler_SwitchWorkspace(t *testing.T) {
	users, authz, handler := setupUserTest()

	userID, workspaceID := uuid.New(), uuid.New()
	authz.On("Authorize", mock.Anything, userID, workspaceID, perms(models.PermissionViewOnly)).
		Return(roleFixture(models.RoleMember), nil)
	users.On("SetCurrentWorkspace", mock.Anything, userID, workspaceID).
		Return(&models.User{ID: userID, CurrentWorkspaceID: &workspaceID}, nil)

	client := route(t, http.MethodPost, "/users/me/current-workspace", handler.SwitchWorkspace, userID)
	rec := client.POST("/users/me/current-workspace", dto.SwitchWorkspaceRequest{WorkspaceID: workspaceID})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.UserResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Equal(t, &workspaceID, resp.CurrentWorkspaceID)
	users.AssertExpectations(t)
	authz.AssertExpectations(t)
}

func TestUserHandler_SwitchWorkspace_NotAMember(t *testing.T) {
	users, authz, handler := setupUserTest()

	userID, workspaceID := uuid.New(), uuid.New()
	authz.On("Authorize", mock.Anything, userID, workspaceID, perms(models.PermissionViewOnly)).
		Return(nil, apperrors.Unauthorized("you are not a member of this workspace"))

	client := route(t, http.MethodPost, "/users/me/current-workspace", handler.SwitchWorkspace, userID)
	rec := client.POST("/users/me/current-workspace", dto.SwitchWorkspaceRequest{WorkspaceID: workspaceID})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var body dto.ErrorResponse
	testutil.ParseJSON(t, rec, &body)
	assert.Equal(t, apperrors.CodeAccessUnauthorized, body.Code)
	users.AssertNotCalled(t, "SetCurrentWorkspace", mock.Anything, mock.Anything, mock.Anything)
}
