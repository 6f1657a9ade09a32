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

const taskColumns = `id, task_code, title, description, status, priority, project_id, workspace_id,
	assigned_to, created_by, due_date, created_at, updated_at`

type TaskService struct {
	db *database.DB
}

func NewTaskService(db *database.DB) *TaskService {
	return &TaskService{db: db}
}

func newTaskCode() string {
	return "task-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID, &t.TaskCode, &t.Title, &t.Description, &t.Status, &t.Priority, &t.ProjectID, &t.WorkspaceID,
		&t.AssignedTo, &t.CreatedBy, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// projectWorkspace returns the workspace a project lives in, failing with
// NotFound when the project does not exist or lives elsewhere.
func (s *TaskService) projectWorkspace(ctx context.Context, workspaceID, projectID uuid.UUID) (uuid.UUID, error) {
	var owning uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT workspace_id FROM projects WHERE id = $1`, projectID).Scan(&owning)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, errProjectNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load project: %w", err)
	}
	if owning != workspaceID {
		return uuid.Nil, errProjectNotFound
	}
	return owning, nil
}

func (s *TaskService) ensureAssignable(ctx context.Context, workspaceID uuid.UUID, assignee *uuid.UUID) error {
	if assignee == nil {
		return nil
	}
	var isMember bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM members WHERE user_id = $1 AND workspace_id = $2)
	`, *assignee, workspaceID).Scan(&isMember)
	if err != nil {
		return fmt.Errorf("failed to check assignee: %w", err)
	}
	if !isMember {
		return apperrors.BadRequest("assigned user is not a member of this workspace")
	}
	return nil
}

func validateTaskInput(in *models.TaskInput) error {
	if in.Status != "" && !in.Status.Valid() {
		return apperrors.BadRequest(fmt.Sprintf("invalid task status %q", in.Status))
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return apperrors.BadRequest(fmt.Sprintf("invalid task priority %q", in.Priority))
	}
	return nil
}

// Create adds a task to a project. The task's workspace is always the
// project's workspace, and an assignee must be a member of it.
func (s *TaskService) Create(ctx context.Context, workspaceID, projectID, userID uuid.UUID, in models.TaskInput) (*models.Task, error) {
	if err := validateTaskInput(&in); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.TaskStatusTodo
	}
	if in.Priority == "" {
		in.Priority = models.TaskPriorityNormal
	}

	taskWorkspace, err := s.projectWorkspace(ctx, workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAssignable(ctx, taskWorkspace, in.AssignedTo); err != nil {
		return nil, err
	}

	task, err := scanTask(s.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (task_code, title, description, status, priority, project_id, workspace_id, assigned_to, created_by, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+taskColumns,
		newTaskCode(), in.Title, in.Description, in.Status, in.Priority, projectID, taskWorkspace,
		in.AssignedTo, userID, in.DueDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update changes the given fields of a task; empty or nil values keep the
// stored ones.
func (s *TaskService) Update(ctx context.Context, workspaceID, projectID, taskID uuid.UUID, in models.TaskInput) (*models.Task, error) {
	if err := validateTaskInput(&in); err != nil {
		return nil, err
	}

	taskWorkspace, err := s.projectWorkspace(ctx, workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAssignable(ctx, taskWorkspace, in.AssignedTo); err != nil {
		return nil, err
	}

	task, err := scanTask(s.db.Pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = COALESCE(NULLIF($1, ''), title),
		    description = COALESCE($2, description),
		    status = COALESCE(NULLIF($3, ''), status),
		    priority = COALESCE(NULLIF($4, ''), priority),
		    assigned_to = COALESCE($5, assigned_to),
		    due_date = COALESCE($6, due_date),
		    updated_at = NOW()
		WHERE id = $7 AND project_id = $8 AND workspace_id = $9
		RETURNING `+taskColumns,
		in.Title, in.Description, string(in.Status), string(in.Priority), in.AssignedTo, in.DueDate,
		taskID, projectID, taskWorkspace))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("task not found or does not belong to this project")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *TaskService) GetByID(ctx context.Context, workspaceID, projectID, taskID uuid.UUID) (*models.Task, error) {
	if _, err := s.projectWorkspace(ctx, workspaceID, projectID); err != nil {
		return nil, err
	}

	task, err := scanTask(s.db.Pool.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE id = $1 AND project_id = $2 AND workspace_id = $3
	`, taskID, projectID, workspaceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, workspaceID, taskID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND workspace_id = $2`, taskID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("task not found or does not belong to this workspace")
	}
	return nil
}

// buildTaskFilter renders filter as a WHERE clause over tasks. Arguments are
// numbered from $1, with the workspace id first.
func buildTaskFilter(workspaceID uuid.UUID, filter models.TaskFilter) (string, []any) {
	conds := []string{"workspace_id = $1"}
	args := []any{workspaceID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.ProjectID != nil {
		add("project_id = $%d", *filter.ProjectID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}
		add("status = ANY($%d)", statuses)
	}
	if len(filter.Priorities) > 0 {
		priorities := make([]string, len(filter.Priorities))
		for i, p := range filter.Priorities {
			priorities[i] = string(p)
		}
		add("priority = ANY($%d)", priorities)
	}
	if len(filter.AssignedTo) > 0 {
		assignees := make([]string, len(filter.AssignedTo))
		for i, id := range filter.AssignedTo {
			assignees[i] = id.String()
		}
		add("assigned_to = ANY($%d::uuid[])", assignees)
	}
	if filter.Keyword != "" {
		add("title ILIKE $%d", "%"+filter.Keyword+"%")
	}
	if filter.DueDate != nil {
		add("due_date::date = $%d::date", *filter.DueDate)
	}

	return strings.Join(conds, " AND "), args
}

// List returns one page of a workspace's tasks matching filter, newest first.
func (s *TaskService) List(ctx context.Context, workspaceID uuid.UUID, filter models.TaskFilter, pageSize, pageNumber int) ([]models.Task, models.Pagination, error) {
	page := models.NewPagination(pageSize, pageNumber)
	where, args := buildTaskFilter(workspaceID, filter)

	var total int64
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE `+where, args...).Scan(&total); err != nil {
		return nil, page, fmt.Errorf("failed to count tasks: %w", err)
	}
	page = page.WithTotal(total)

	limitArg := len(args) + 1
	rows, err := s.db.Pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE `+where+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, limitArg, limitArg+1),
		append(args, page.PageSize, page.Skip)...)
	if err != nil {
		return nil, page, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, page, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, page, rows.Err()
}
