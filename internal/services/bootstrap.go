package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/teamsync-api/internal/apperrors"
	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultWorkspaceName = "My Workspace"

const workspaceColumns = `id, name, description, owner_id, invite_code, created_at, updated_at`

func defaultWorkspaceDescription(userName string) *string {
	d := "Workspace created for " + userName
	return &d
}

func newInviteCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func scanWorkspace(row pgx.Row) (*models.Workspace, error) {
	var w models.Workspace
	err := row.Scan(&w.ID, &w.Name, &w.Description, &w.OwnerID, &w.InviteCode, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// roleIDByName reads the stored id for a seeded role. A missing role means
// the roles table was never seeded.
func roleIDByName(ctx context.Context, q database.Querier, name models.RoleName) (uuid.UUID, error) {
	var roleID uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, name).Scan(&roleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, apperrors.NotFound(fmt.Sprintf("%s role not found", strings.ToLower(string(name))))
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up role: %w", err)
	}
	return roleID, nil
}

// createOwnedWorkspace inserts a workspace owned by ownerID, makes the owner
// its OWNER member and points the owner's current workspace at it. It runs on
// the caller's transaction and never commits.
func createOwnedWorkspace(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, name string, description *string) (*models.Workspace, error) {
	workspace, err := scanWorkspace(tx.QueryRow(ctx, `
		INSERT INTO workspaces (name, description, owner_id, invite_code)
		VALUES ($1, $2, $3, $4)
		RETURNING `+workspaceColumns,
		name, description, ownerID, newInviteCode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	roleID, err := roleIDByName(ctx, tx, models.RoleOwner)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO members (user_id, workspace_id, role_id)
		VALUES ($1, $2, $3)
	`, ownerID, workspace.ID, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to add owner as member: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET current_workspace_id = $1, updated_at = NOW()
		WHERE id = $2
	`, workspace.ID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to set current workspace: %w", err)
	}

	return workspace, nil
}
