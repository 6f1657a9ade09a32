package services

import (
	"testing"
	"time"

	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

var (
	userCols      = []string{"id", "email", "name", "profile_picture", "password_hash", "provider", "provider_id", "current_workspace_id", "last_login", "created_at", "updated_at"}
	workspaceCols = []string{"id", "name", "description", "owner_id", "invite_code", "created_at", "updated_at"}
	projectCols   = []string{"id", "name", "description", "emoji", "workspace_id", "created_by", "created_at", "updated_at"}
	taskCols      = []string{"id", "task_code", "title", "description", "status", "priority", "project_id", "workspace_id", "assigned_to", "created_by", "due_date", "created_at", "updated_at"}
)

func newMockDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return &database.DB{Pool: mock}, mock
}

func userRow(u models.User) *pgxmock.Rows {
	return pgxmock.NewRows(userCols).AddRow(
		u.ID, u.Email, u.Name, u.ProfilePicture, u.PasswordHash, u.Provider, u.ProviderID,
		u.CurrentWorkspaceID, u.LastLogin, u.CreatedAt, u.UpdatedAt,
	)
}

func workspaceRow(w models.Workspace) *pgxmock.Rows {
	return pgxmock.NewRows(workspaceCols).AddRow(
		w.ID, w.Name, w.Description, w.OwnerID, w.InviteCode, w.CreatedAt, w.UpdatedAt,
	)
}

func projectRows(projects ...models.Project) *pgxmock.Rows {
	rows := pgxmock.NewRows(projectCols)
	for _, p := range projects {
		rows.AddRow(p.ID, p.Name, p.Description, p.Emoji, p.WorkspaceID, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func taskRows(tasks ...models.Task) *pgxmock.Rows {
	rows := pgxmock.NewRows(taskCols)
	for _, t := range tasks {
		rows.AddRow(
			t.ID, t.TaskCode, t.Title, t.Description, t.Status, t.Priority, t.ProjectID, t.WorkspaceID,
			t.AssignedTo, t.CreatedBy, t.DueDate, t.CreatedAt, t.UpdatedAt,
		)
	}
	return rows
}

// expectOwnedWorkspace queues the statements createOwnedWorkspace issues on
// a transaction that has already begun.
func expectOwnedWorkspace(mock pgxmock.PgxPoolIface, ownerID uuid.UUID, name string, description *string, workspaceID uuid.UUID) {
	now := time.Now()
	ownerRoleID := uuid.New()

	mock.ExpectQuery(`INSERT INTO workspaces \(name, description, owner_id, invite_code\)`).
		WithArgs(name, description, ownerID, pgxmock.AnyArg()).
		WillReturnRows(workspaceRow(models.Workspace{
			ID: workspaceID, Name: name, Description: description, OwnerID: ownerID,
			InviteCode: "a1b2c3d4", CreatedAt: now, UpdatedAt: now,
		}))
	mock.ExpectQuery(`SELECT id FROM roles WHERE name = \$1`).
		WithArgs(models.RoleOwner).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(ownerRoleID))
	mock.ExpectExec(`INSERT INTO members \(user_id, workspace_id, role_id\)`).
		WithArgs(ownerID, workspaceID, ownerRoleID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE users SET current_workspace_id = \$1`).
		WithArgs(workspaceID, ownerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
}

func strPtr(s string) *string { return &s }
