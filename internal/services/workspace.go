package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/teamsync-api/internal/apperrors"
	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

// reassignCurrentWorkspace points a user at their earliest-joined remaining
// membership, or NULL when none is left. It is shared by workspace deletion
// and member removal and must run after the relevant members rows are gone.
const reassignCurrentWorkspace = `
	current_workspace_id = (
		SELECT m.workspace_id FROM members m
		WHERE m.user_id = u.id
		ORDER BY m.joined_at, m.id
		LIMIT 1
	), updated_at = NOW()`

type WorkspaceService struct {
	db      *database.DB
	metrics *observability.Metrics
}

func NewWorkspaceService(db *database.DB, metrics *observability.Metrics) *WorkspaceService {
	return &WorkspaceService{db: db, metrics: metrics}
}

// Create makes a new workspace owned by ownerID and switches the owner to it.
func (s *WorkspaceService) Create(ctx context.Context, ownerID uuid.UUID, name string, description *string) (*models.Workspace, error) {
	start := time.Now()
	var workspace *models.Workspace
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		var taken bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM workspaces WHERE name = $1)
		`, name).Scan(&taken); err != nil {
			return fmt.Errorf("failed to check workspace name: %w", err)
		}
		if taken {
			return apperrors.BadRequest("workspace name already in use")
		}

		var err error
		workspace, err = createOwnedWorkspace(ctx, tx, ownerID, name, description)
		return err
	})
	s.metrics.ObserveProtocol("bootstrap", start, err)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"workspace_id": workspace.ID,
		"owner_id":     ownerID,
	}).Info("workspace created")
	return workspace, nil
}

// ListForUser returns every workspace userID belongs to with the role held
// there, oldest membership first.
func (s *WorkspaceService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.MemberWorkspace, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT w.id, w.name, w.description, w.owner_id, w.invite_code, w.created_at, w.updated_at, r.name
		FROM members m
		JOIN workspaces w ON w.id = m.workspace_id
		JOIN roles r ON r.id = m.role_id
		WHERE m.user_id = $1
		ORDER BY m.joined_at, m.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	workspaces := []models.MemberWorkspace{}
	for rows.Next() {
		var mw models.MemberWorkspace
		w := &mw.Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.OwnerID, &w.InviteCode, &w.CreatedAt, &w.UpdatedAt, &mw.Role); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, mw)
	}
	return workspaces, rows.Err()
}

func (s *WorkspaceService) GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	workspace, err := scanWorkspace(s.db.Pool.QueryRow(ctx, `
		SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1
	`, workspaceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("workspace not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	return workspace, nil
}

// GetWithMembers loads a workspace and its members with their roles.
func (s *WorkspaceService) GetWithMembers(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, []models.Member, error) {
	workspace, err := s.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.listMembers(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	return workspace, members, nil
}

// Update changes name and description. Empty values keep the stored ones.
func (s *WorkspaceService) Update(ctx context.Context, workspaceID uuid.UUID, name string, description *string) (*models.Workspace, error) {
	workspace, err := scanWorkspace(s.db.Pool.QueryRow(ctx, `
		UPDATE workspaces
		SET name = COALESCE(NULLIF($1, ''), name),
		    description = COALESCE(NULLIF($2, ''), description),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING `+workspaceColumns,
		name, description, workspaceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("workspace not found")
	}
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.BadRequest("workspace name already in use")
		}
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}
	return workspace, nil
}

// Delete removes a workspace with all of its tasks, projects and members in
// one transaction. Only the owner may delete. Every user whose current
// workspace was the deleted one is moved to their earliest remaining
// membership. The requester's resulting current workspace is returned and is
// nil when they have no workspace left.
func (s *WorkspaceService) Delete(ctx context.Context, workspaceID, requesterID uuid.UUID) (*uuid.UUID, error) {
	start := time.Now()
	var current *uuid.UUID
	var removed struct{ tasks, projects, members int64 }

	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		var ownerID uuid.UUID
		err := tx.QueryRow(ctx, `
			SELECT owner_id FROM workspaces WHERE id = $1 FOR UPDATE
		`, workspaceID).Scan(&ownerID)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("workspace not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load workspace: %w", err)
		}
		if ownerID != requesterID {
			return apperrors.Forbidden("only the workspace owner can delete this workspace", apperrors.CodeWorkspaceOwnerRequired)
		}

		err = tx.QueryRow(ctx, `
			SELECT current_workspace_id FROM users WHERE id = $1 FOR UPDATE
		`, requesterID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("user not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE workspace_id = $1`, workspaceID)
		if err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		removed.tasks = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM projects WHERE workspace_id = $1`, workspaceID)
		if err != nil {
			return fmt.Errorf("failed to delete projects: %w", err)
		}
		removed.projects = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM members WHERE workspace_id = $1`, workspaceID)
		if err != nil {
			return fmt.Errorf("failed to delete members: %w", err)
		}
		removed.members = tag.RowsAffected()

		rows, err := tx.Query(ctx, `
			UPDATE users u SET `+reassignCurrentWorkspace+`
			WHERE u.current_workspace_id = $1
			RETURNING u.id, u.current_workspace_id
		`, workspaceID)
		if err != nil {
			return fmt.Errorf("failed to reassign current workspaces: %w", err)
		}
		for rows.Next() {
			var userID uuid.UUID
			var next *uuid.UUID
			if err := rows.Scan(&userID, &next); err != nil {
				rows.Close()
				return fmt.Errorf("failed to reassign current workspaces: %w", err)
			}
			if userID == requesterID {
				current = next
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to reassign current workspaces: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, workspaceID); err != nil {
			return fmt.Errorf("failed to delete workspace: %w", err)
		}
		return nil
	})
	s.metrics.ObserveProtocol("cascade_delete", start, err)

	entry := logrus.WithFields(logrus.Fields{
		"workspace_id": workspaceID,
		"requester_id": requesterID,
	})
	if err != nil {
		entry.WithError(err).Warn("workspace deletion failed")
		return nil, err
	}

	entry.WithFields(logrus.Fields{
		"tasks":    removed.tasks,
		"projects": removed.projects,
		"members":  removed.members,
	}).Info("workspace deleted")
	return current, nil
}

// GetMembers lists a workspace's members together with every assignable role.
func (s *WorkspaceService) GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]models.Member, []models.Role, error) {
	members, err := s.listMembers(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `SELECT id, name FROM roles ORDER BY created_at, name`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, nil, err
		}
		roles = append(roles, r)
	}
	return members, roles, rows.Err()
}

func (s *WorkspaceService) listMembers(ctx context.Context, workspaceID uuid.UUID) ([]models.Member, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT m.id, m.user_id, m.workspace_id, m.role_id, m.joined_at,
		       u.name, u.email, u.profile_picture, r.name
		FROM members m
		JOIN users u ON u.id = m.user_id
		JOIN roles r ON r.id = m.role_id
		WHERE m.workspace_id = $1
		ORDER BY m.joined_at, m.id
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		var u models.User
		var r models.Role
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.WorkspaceID, &m.RoleID, &m.JoinedAt,
			&u.Name, &u.Email, &u.ProfilePicture, &r.Name,
		); err != nil {
			return nil, err
		}
		u.ID = m.UserID
		r.ID = m.RoleID
		m.User = &u
		m.Role = &r
		members = append(members, m)
	}
	return members, rows.Err()
}

// ChangeMemberRole assigns roleID to the member identified by memberUserID.
// The owner's role is fixed, and the OWNER role cannot be handed out since
// a workspace has exactly one owner.
func (s *WorkspaceService) ChangeMemberRole(ctx context.Context, workspaceID, memberUserID, roleID uuid.UUID) (*models.Member, error) {
	var ownerID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT owner_id FROM workspaces WHERE id = $1`, workspaceID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("workspace not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	var roleName models.RoleName
	err = s.db.Pool.QueryRow(ctx, `SELECT name FROM roles WHERE id = $1`, roleID).Scan(&roleName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("role not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load role: %w", err)
	}

	if memberUserID == ownerID {
		return nil, apperrors.BadRequest("the workspace owner's role cannot be changed")
	}
	if roleName == models.RoleOwner {
		return nil, apperrors.BadRequest("a workspace can only have one owner")
	}

	var m models.Member
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE members SET role_id = $1, updated_at = NOW()
		WHERE workspace_id = $2 AND user_id = $3
		RETURNING id, user_id, workspace_id, role_id, joined_at
	`, roleID, workspaceID, memberUserID).Scan(&m.ID, &m.UserID, &m.WorkspaceID, &m.RoleID, &m.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("member not found in the workspace")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to change member role: %w", err)
	}
	m.Role = &models.Role{ID: roleID, Name: roleName}

	logrus.WithFields(logrus.Fields{
		"workspace_id": workspaceID,
		"user_id":      memberUserID,
		"role":         roleName,
	}).Info("member role changed")
	return &m, nil
}

// RemoveMember deletes a membership, unassigns the member's tasks in the
// workspace and moves their current workspace pointer if it pointed here.
func (s *WorkspaceService) RemoveMember(ctx context.Context, workspaceID, memberUserID uuid.UUID) error {
	start := time.Now()
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		var ownerID uuid.UUID
		err := tx.QueryRow(ctx, `SELECT owner_id FROM workspaces WHERE id = $1`, workspaceID).Scan(&ownerID)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("workspace not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load workspace: %w", err)
		}
		if ownerID == memberUserID {
			return apperrors.BadRequest("the workspace owner cannot be removed")
		}

		tag, err := tx.Exec(ctx, `
			DELETE FROM members WHERE workspace_id = $1 AND user_id = $2
		`, workspaceID, memberUserID)
		if err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NotFound("member not found in the workspace")
		}

		if _, err := tx.Exec(ctx, `
			UPDATE tasks SET assigned_to = NULL, updated_at = NOW()
			WHERE workspace_id = $1 AND assigned_to = $2
		`, workspaceID, memberUserID); err != nil {
			return fmt.Errorf("failed to unassign tasks: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE users u SET `+reassignCurrentWorkspace+`
			WHERE u.id = $1 AND u.current_workspace_id = $2
		`, memberUserID, workspaceID); err != nil {
			return fmt.Errorf("failed to reassign current workspace: %w", err)
		}
		return nil
	})
	s.metrics.ObserveProtocol("remove_member", start, err)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"workspace_id": workspaceID,
		"user_id":      memberUserID,
	}).Info("member removed")
	return nil
}

// JoinByInviteCode adds userID to the workspace behind inviteCode as a MEMBER.
func (s *WorkspaceService) JoinByInviteCode(ctx context.Context, userID uuid.UUID, inviteCode string) (*models.Workspace, models.RoleName, error) {
	workspace, err := scanWorkspace(s.db.Pool.QueryRow(ctx, `
		SELECT `+workspaceColumns+` FROM workspaces WHERE invite_code = $1
	`, inviteCode))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", apperrors.NotFound("invalid invite code or workspace not found")
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load workspace: %w", err)
	}

	var isMember bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM members WHERE user_id = $1 AND workspace_id = $2)
	`, userID, workspace.ID).Scan(&isMember)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return nil, "", apperrors.BadRequest("you are already a member of this workspace")
	}

	roleID, err := roleIDByName(ctx, s.db.Pool, models.RoleMember)
	if err != nil {
		return nil, "", err
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO members (user_id, workspace_id, role_id)
		VALUES ($1, $2, $3)
	`, userID, workspace.ID, roleID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, "", apperrors.BadRequest("you are already a member of this workspace")
		}
		return nil, "", fmt.Errorf("failed to join workspace: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"workspace_id": workspace.ID,
		"user_id":      userID,
	}).Info("member joined by invite code")
	return workspace, models.RoleMember, nil
}

func (s *WorkspaceService) ResetInviteCode(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	workspace, err := scanWorkspace(s.db.Pool.QueryRow(ctx, `
		UPDATE workspaces SET invite_code = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+workspaceColumns,
		newInviteCode(), workspaceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("workspace not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reset invite code: %w", err)
	}
	return workspace, nil
}

func (s *WorkspaceService) Analytics(ctx context.Context, workspaceID uuid.UUID) (*models.TaskAnalytics, error) {
	return taskAnalytics(ctx, s.db.Pool, `workspace_id = $1`, workspaceID)
}
