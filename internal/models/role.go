package models

import (
	"time"

	"github.com/google/uuid"
)

type RoleName string

const (
	RoleOwner  RoleName = "OWNER"
	RoleAdmin  RoleName = "ADMIN"
	RoleMember RoleName = "MEMBER"
)

func (r RoleName) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

type Permission string

const (
	PermissionCreateWorkspace         Permission = "CREATE_WORKSPACE"
	PermissionDeleteWorkspace         Permission = "DELETE_WORKSPACE"
	PermissionEditWorkspace           Permission = "EDIT_WORKSPACE"
	PermissionManageWorkspaceSettings Permission = "MANAGE_WORKSPACE_SETTINGS"

	PermissionAddMember        Permission = "ADD_MEMBER"
	PermissionChangeMemberRole Permission = "CHANGE_MEMBER_ROLE"
	PermissionRemoveMember     Permission = "REMOVE_MEMBER"

	PermissionCreateProject Permission = "CREATE_PROJECT"
	PermissionEditProject   Permission = "EDIT_PROJECT"
	PermissionDeleteProject Permission = "DELETE_PROJECT"

	PermissionCreateTask Permission = "CREATE_TASK"
	PermissionEditTask   Permission = "EDIT_TASK"
	PermissionDeleteTask Permission = "DELETE_TASK"

	PermissionViewOnly Permission = "VIEW_ONLY"
)

// Role is the persisted form of a catalog entry. Members reference it by ID.
type Role struct {
	ID          uuid.UUID    `json:"id"`
	Name        RoleName     `json:"role"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
