package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Emoji       *string `json:"emoji,omitempty"`
	Description *string `json:"description,omitempty"`
}

type UpdateProjectRequest struct {
	Name        string  `json:"name"`
	Emoji       *string `json:"emoji,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Emoji       string    `json:"emoji"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProjectListResponse struct {
	Projects   []ProjectResponse  `json:"projects"`
	Pagination PaginationResponse `json:"pagination"`
}

type PaginationResponse struct {
	TotalCount int64 `json:"total_count"`
	PageSize   int   `json:"page_size"`
	PageNumber int   `json:"page_number"`
	TotalPages int   `json:"total_pages"`
	Skip       int   `json:"skip"`
}
