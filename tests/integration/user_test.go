package integration

import (
	"context"
	"testing"

	"github.com/dimitrije/teamsync-api/internal/apperrors"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/internal/rbac"
	"github.com/dimitrije/teamsync-api/internal/services"
	"github.com/dimitrije/teamsync-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Integration_Register_Bootstrap(t *testing.T) {
	tdb, fixtures := setupTest(t)
	svc := services.NewUserService(tdb.DB, nil)
	ctx := context.Background()

	user, ws, err := svc.Register(ctx, "ana@example.com", "Ana", "correct horse")
	require.NoError(t, err)

	assert.Equal(t, "My Workspace", ws.Name)
	require.NotNil(t, ws.Description)
	assert.Equal(t, "Workspace created for Ana", *ws.Description)
	assert.Equal(t, user.ID, ws.OwnerID)
	require.NotNil(t, user.CurrentWorkspaceID)
	assert.Equal(t, ws.ID, *user.CurrentWorkspaceID)

	stored, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CurrentWorkspaceID)
	assert.Equal(t, ws.ID, *stored.CurrentWorkspaceID)

	assert.Equal(t, 1, fixtures.Count(t, "members m JOIN roles r ON r.id = m.role_id",
		"m.user_id = $1 AND m.workspace_id = $2 AND r.name = $3", user.ID, ws.ID, models.RoleOwner))

	loggedIn, err := svc.Login(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotNil(t, loggedIn.LastLogin)

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserService_Integration_Register_DuplicateEmail(t *testing.T) {
	tdb, fixtures := setupTest(t)
	svc := services.NewUserService(tdb.DB, nil)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "dup@example.com", "First", "password1")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "dup@example.com", "Second", "password2")
	assert.True(t, apperrors.IsBadRequest(err))
	assert.Equal(t, 1, fixtures.Count(t, "users", "email = $1", "dup@example.com"))
	assert.Equal(t, 1, fixtures.Count(t, "workspaces", ""))
}

func TestUserService_Integration_Register_RollsBackWithoutOwnerRole(t *testing.T) {
	tdb, fixtures := setupTest(t)
	svc := services.NewUserService(tdb.DB, nil)
	ctx := context.Background()

	_, err := tdb.DB.Pool.Exec(ctx, `DELETE FROM roles WHERE name = $1`, models.RoleOwner)
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "ghost@example.com", "Ghost", "password1")
	assert.True(t, apperrors.IsNotFound(err))

	assert.Equal(t, 0, fixtures.Count(t, "users", ""))
	assert.Equal(t, 0, fixtures.Count(t, "workspaces", ""))
	assert.Equal(t, 0, fixtures.Count(t, "members", ""))

	inserted, err := rbac.SeedRoles(ctx, tdb.DB)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	_, _, err = svc.Register(ctx, "ghost@example.com", "Ghost", "password1")
	assert.NoError(t, err)
}

func TestUserService_Integration_FindOrCreateFromOAuth(t *testing.T) {
	tdb, fixtures := setupTest(t)
	svc := services.NewUserService(tdb.DB, nil)
	ctx := context.Background()

	info := testutil.OAuthUserInfo("oauth@example.com", "OAuth User", "google-12345")

	created, err := svc.FindOrCreateFromOAuth(ctx, info)
	require.NoError(t, err)
	assert.Equal(t, models.ProviderGoogle, created.Provider)
	require.NotNil(t, created.CurrentWorkspaceID)

	info.Name = "Renamed"
	found, err := svc.FindOrCreateFromOAuth(ctx, info)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Renamed", found.Name)
	assert.Equal(t, *created.CurrentWorkspaceID, *found.CurrentWorkspaceID)

	assert.Equal(t, 1, fixtures.Count(t, "workspaces", "owner_id = $1", created.ID))
}

func TestUserService_Integration_SetCurrentWorkspace(t *testing.T) {
	tdb, fixtures := setupTest(t)
	svc := services.NewUserService(tdb.DB, nil)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	member := fixtures.CreateUser(t)
	ws := fixtures.CreateWorkspace(t, owner)
	fixtures.AddMember(t, ws, member, models.RoleMember)

	updated, err := svc.SetCurrentWorkspace(ctx, member.ID, ws.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.CurrentWorkspaceID)
	assert.Equal(t, ws.ID, *updated.CurrentWorkspaceID)
}
