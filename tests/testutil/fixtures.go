package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/internal/oauth"
	"github.com/google/uuid"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:      fmt.Sprintf("user%d@example.com", f.counter),
		Name:       fmt.Sprintf("Test User %d", f.counter),
		Provider:   models.ProviderEmail,
		ProviderID: fmt.Sprintf("user%d@example.com", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, profile_picture, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, user.Email, user.Name, user.ProfilePicture, user.Provider, user.ProviderID).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
		if u.Provider == models.ProviderEmail {
			u.ProviderID = email
		}
	}
}

func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

func WithProvider(provider, providerID string) UserOption {
	return func(u *models.User) {
		u.Provider = provider
		u.ProviderID = providerID
	}
}

// CreateWorkspace creates a workspace owned by owner together with the
// owner's OWNER membership, and points the owner's current workspace at it.
func (f *Fixtures) CreateWorkspace(t *testing.T, owner *models.User, opts ...WorkspaceOption) *models.Workspace {
	t.Helper()
	f.counter++

	ws := &models.Workspace{
		Name:       fmt.Sprintf("Test Workspace %d", f.counter),
		OwnerID:    owner.ID,
		InviteCode: uuid.NewString()[:8],
	}

	for _, opt := range opts {
		opt(ws)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO workspaces (name, description, owner_id, invite_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, ws.Name, ws.Description, ws.OwnerID, ws.InviteCode).Scan(&ws.ID, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	f.AddMember(t, ws, owner, models.RoleOwner)

	if _, err := f.db.Pool.Exec(ctx, `UPDATE users SET current_workspace_id = $1 WHERE id = $2`, ws.ID, owner.ID); err != nil {
		t.Fatalf("failed to set current workspace: %v", err)
	}
	owner.CurrentWorkspaceID = &ws.ID

	return ws
}

// WorkspaceOption configures a test workspace
type WorkspaceOption func(*models.Workspace)

func WithWorkspaceName(name string) WorkspaceOption {
	return func(w *models.Workspace) {
		w.Name = name
	}
}

func WithInviteCode(code string) WorkspaceOption {
	return func(w *models.Workspace) {
		w.InviteCode = code
	}
}

// AddMember adds user to ws with the seeded role named role.
func (f *Fixtures) AddMember(t *testing.T, ws *models.Workspace, user *models.User, role models.RoleName) *models.Member {
	t.Helper()
	ctx := context.Background()

	member := &models.Member{UserID: user.ID, WorkspaceID: ws.ID}
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO members (user_id, workspace_id, role_id)
		SELECT $1, $2, id FROM roles WHERE name = $3
		RETURNING id, role_id, joined_at
	`, user.ID, ws.ID, role).Scan(&member.ID, &member.RoleID, &member.JoinedAt)
	if err != nil {
		t.Fatalf("failed to add %s member: %v", role, err)
	}

	return member
}

// SetCurrentWorkspace points user's current workspace at ws.
func (f *Fixtures) SetCurrentWorkspace(t *testing.T, user *models.User, ws *models.Workspace) {
	t.Helper()
	if _, err := f.db.Pool.Exec(context.Background(), `UPDATE users SET current_workspace_id = $1 WHERE id = $2`, ws.ID, user.ID); err != nil {
		t.Fatalf("failed to set current workspace: %v", err)
	}
	user.CurrentWorkspaceID = &ws.ID
}

// RoleID returns the id of the seeded role named role.
func (f *Fixtures) RoleID(t *testing.T, role models.RoleName) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	if err := f.db.Pool.QueryRow(context.Background(), `SELECT id FROM roles WHERE name = $1`, role).Scan(&id); err != nil {
		t.Fatalf("failed to look up role %s: %v", role, err)
	}
	return id
}

func (f *Fixtures) CreateProject(t *testing.T, ws *models.Workspace, creator *models.User) *models.Project {
	t.Helper()
	f.counter++

	project := &models.Project{
		Name:        fmt.Sprintf("Test Project %d", f.counter),
		Emoji:       models.DefaultProjectEmoji,
		WorkspaceID: ws.ID,
		CreatedBy:   creator.ID,
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO projects (name, emoji, workspace_id, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, project.Name, project.Emoji, project.WorkspaceID, project.CreatedBy).Scan(
		&project.ID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	return project
}

// CreateTask creates a TODO task in project. assignee may be nil.
func (f *Fixtures) CreateTask(t *testing.T, project *models.Project, creator, assignee *models.User) *models.Task {
	t.Helper()
	f.counter++

	task := &models.Task{
		TaskCode:    fmt.Sprintf("task-%d%s", f.counter, uuid.NewString()[:4]),
		Title:       fmt.Sprintf("Test Task %d", f.counter),
		Status:      models.TaskStatusTodo,
		Priority:    models.TaskPriorityNormal,
		ProjectID:   project.ID,
		WorkspaceID: project.WorkspaceID,
		CreatedBy:   creator.ID,
	}
	if assignee != nil {
		task.AssignedTo = &assignee.ID
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO tasks (task_code, title, status, priority, project_id, workspace_id, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, task.TaskCode, task.Title, task.Status, task.Priority, task.ProjectID, task.WorkspaceID,
		task.AssignedTo, task.CreatedBy).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}

// OAuthUserInfo creates test OAuth user info
func OAuthUserInfo(email, name, id string) *oauth.UserInfo {
	return &oauth.UserInfo{
		Email:      email,
		Name:       name,
		PictureURL: "https://example.com/avatar.png",
		ID:         id,
		Provider:   models.ProviderGoogle,
	}
}

// Count returns the number of rows in table matching where (which may be empty).
func (f *Fixtures) Count(t *testing.T, table, where string, args ...any) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	if err := f.db.Pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
