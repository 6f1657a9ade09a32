package rbac

import "github.com/dimitrije/teamsync-api/internal/models"

var catalog = map[models.RoleName][]models.Permission{
	models.RoleOwner: {
		models.PermissionCreateWorkspace,
		models.PermissionEditWorkspace,
		models.PermissionDeleteWorkspace,
		models.PermissionManageWorkspaceSettings,

		models.PermissionAddMember,
		models.PermissionChangeMemberRole,
		models.PermissionRemoveMember,

		models.PermissionCreateProject,
		models.PermissionEditProject,
		models.PermissionDeleteProject,

		models.PermissionCreateTask,
		models.PermissionEditTask,
		models.PermissionDeleteTask,

		models.PermissionViewOnly,
	},
	models.RoleAdmin: {
		models.PermissionManageWorkspaceSettings,

		models.PermissionAddMember,

		models.PermissionCreateProject,
		models.PermissionEditProject,
		models.PermissionDeleteProject,

		models.PermissionCreateTask,
		models.PermissionEditTask,
		models.PermissionDeleteTask,

		models.PermissionViewOnly,
	},
	models.RoleMember: {
		models.PermissionCreateTask,
		models.PermissionEditTask,

		models.PermissionViewOnly,
	},
}

// Roles lists the catalog roles from most to least capable.
func Roles() []models.RoleName {
	return []models.RoleName{models.RoleOwner, models.RoleAdmin, models.RoleMember}
}

// Permissions returns a copy of the permissions granted to role, or nil for
// an unknown role.
func Permissions(role models.RoleName) []models.Permission {
	perms, ok := catalog[role]
	if !ok {
		return nil
	}
	out := make([]models.Permission, len(perms))
	copy(out, perms)
	return out
}

func HasPermission(role models.RoleName, permission models.Permission) bool {
	for _, p := range catalog[role] {
		if p == permission {
			return true
		}
	}
	return false
}

func permissionStrings(role models.RoleName) []string {
	perms := catalog[role]
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}
