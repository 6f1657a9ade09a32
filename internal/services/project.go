package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/teamsync-api/internal/apperrors"
	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

const projectColumns = `id, name, description, emoji, workspace_id, created_by, created_at, updated_at`

var errProjectNotFound = apperrors.NotFound("project not found or does not belong to this workspace")

type ProjectService struct {
	db *database.DB
}

func NewProjectService(db *database.DB) *ProjectService {
	return &ProjectService{db: db}
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Emoji, &p.WorkspaceID, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectService) Create(ctx context.Context, workspaceID, userID uuid.UUID, name string, emoji, description *string) (*models.Project, error) {
	projectEmoji := models.DefaultProjectEmoji
	if emoji != nil && *emoji != "" {
		projectEmoji = *emoji
	}

	project, err := scanProject(s.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, emoji, workspace_id, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+projectColumns,
		name, description, projectEmoji, workspaceID, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// List returns one page of a workspace's projects, newest first.
func (s *ProjectService) List(ctx context.Context, workspaceID uuid.UUID, pageSize, pageNumber int) ([]models.Project, models.Pagination, error) {
	page := models.NewPagination(pageSize, pageNumber)

	var total int64
	if err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM projects WHERE workspace_id = $1
	`, workspaceID).Scan(&total); err != nil {
		return nil, page, fmt.Errorf("failed to count projects: %w", err)
	}
	page = page.WithTotal(total)

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, workspaceID, page.PageSize, page.Skip)
	if err != nil {
		return nil, page, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, page, err
		}
		projects = append(projects, *p)
	}
	return projects, page, rows.Err()
}

func (s *ProjectService) GetByID(ctx context.Context, workspaceID, projectID uuid.UUID) (*models.Project, error) {
	project, err := scanProject(s.db.Pool.QueryRow(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE id = $1 AND workspace_id = $2
	`, projectID, workspaceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Analytics(ctx context.Context, workspaceID, projectID uuid.UUID) (*models.TaskAnalytics, error) {
	if _, err := s.GetByID(ctx, workspaceID, projectID); err != nil {
		return nil, err
	}
	return taskAnalytics(ctx, s.db.Pool, `workspace_id = $1 AND project_id = $2`, workspaceID, projectID)
}

// Update changes the given fields; empty values keep the stored ones.
func (s *ProjectService) Update(ctx context.Context, workspaceID, projectID uuid.UUID, name string, emoji, description *string) (*models.Project, error) {
	project, err := scanProject(s.db.Pool.QueryRow(ctx, `
		UPDATE projects
		SET name = COALESCE(NULLIF($1, ''), name),
		    emoji = COALESCE(NULLIF($2, ''), emoji),
		    description = COALESCE(NULLIF($3, ''), description),
		    updated_at = NOW()
		WHERE id = $4 AND workspace_id = $5
		RETURNING `+projectColumns,
		name, emoji, description, projectID, workspaceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// Delete removes a project and its tasks in one transaction.
func (s *ProjectService) Delete(ctx context.Context, workspaceID, projectID uuid.UUID) (*models.Project, error) {
	var project *models.Project
	var tasks int64
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		project, err = scanProject(tx.QueryRow(ctx, `
			SELECT `+projectColumns+` FROM projects WHERE id = $1 AND workspace_id = $2 FOR UPDATE
		`, projectID, workspaceID))
		if errors.Is(err, pgx.ErrNoRows) {
			return errProjectNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE project_id = $1`, projectID)
		if err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		tasks = tag.RowsAffected()

		if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"project_id":   projectID,
		"workspace_id": workspaceID,
		"tasks":        tasks,
	}).Info("project deleted")
	return project, nil
}
