package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "BACKLOG"
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusInReview   TaskStatus = "IN_REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityNormal TaskPriority = "NORMAL"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityNormal, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID    `json:"id"`
	TaskCode    string       `json:"task_code"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	ProjectID   uuid.UUID    `json:"project_id"`
	WorkspaceID uuid.UUID    `json:"workspace_id"`
	AssignedTo  *uuid.UUID   `json:"assigned_to,omitempty"`
	CreatedBy   uuid.UUID    `json:"created_by"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskInput carries the writable fields of a task for create and update.
type TaskInput struct {
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
}

type TaskFilter struct {
	ProjectID  *uuid.UUID
	Statuses   []TaskStatus
	Priorities []TaskPriority
	AssignedTo []uuid.UUID
	Keyword    string
	DueDate    *time.Time
}

type Pagination struct {
	PageSize   int   `json:"page_size"`
	PageNumber int   `json:"page_number"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	Skip       int   `json:"skip"`
}

// NewPagination normalises page size and number, defaulting to 10 and 1.
func NewPagination(pageSize, pageNumber int) Pagination {
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageNumber <= 0 {
		pageNumber = 1
	}
	return Pagination{
		PageSize:   pageSize,
		PageNumber: pageNumber,
		Skip:       (pageNumber - 1) * pageSize,
	}
}

// WithTotal fills in the total count and derived page count.
func (p Pagination) WithTotal(total int64) Pagination {
	p.TotalCount = total
	p.TotalPages = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	return p
}
