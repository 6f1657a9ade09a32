package models

import (
	"time"

	"github.com/google/uuid"
)

type Member struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	RoleID      uuid.UUID `json:"role_id"`
	JoinedAt    time.Time `json:"joined_at"`
	Role        *Role     `json:"role,omitempty"`
	User        *User     `json:"user,omitempty"`
}

// MemberWorkspace pairs a workspace with the caller's role in it.
type MemberWorkspace struct {
	Workspace Workspace `json:"workspace"`
	Role      RoleName  `json:"role"`
}
