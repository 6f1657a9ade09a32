package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWorkspaceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateWorkspaceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type WorkspaceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	InviteCode  string    `json:"invite_code"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type WorkspaceDetailResponse struct {
	WorkspaceResponse
	Members []MemberResponse `json:"members"`
}

type DeleteWorkspaceResponse struct {
	Message            string     `json:"message"`
	CurrentWorkspaceID *uuid.UUID `json:"current_workspace_id"`
}

type MemberResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name,omitempty"`
	Email          string    `json:"email,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	RoleID         uuid.UUID `json:"role_id"`
	Role           string    `json:"role,omitempty"`
	JoinedAt       time.Time `json:"joined_at"`
}

type RoleResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type MembersResponse struct {
	Members []MemberResponse `json:"members"`
	Roles   []RoleResponse   `json:"roles"`
}

type ChangeMemberRoleRequest struct {
	RoleID uuid.UUID `json:"role_id"`
}

type AnalyticsResponse struct {
	TotalTasks     int64 `json:"total_tasks"`
	OverdueTasks   int64 `json:"overdue_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
}
