package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	ProfilePicture     *string    `json:"profile_picture,omitempty"`
	Provider           string     `json:"provider"`
	CurrentWorkspaceID *uuid.UUID `json:"current_workspace_id"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
}

type UpdateUserRequest struct {
	Name           string  `json:"name"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

type SwitchWorkspaceRequest struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
}
