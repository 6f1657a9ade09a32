package rbac

import (
	"testing"

	"github.com/dimitrije/teamsync-api/internal/apperrors"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allPermissions = []models.Permission{
	models.PermissionCreateWorkspace,
	models.PermissionDeleteWorkspace,
	models.PermissionEditWorkspace,
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
}

func TestCatalog_OwnerHasEverything(t *testing.T) {
	assert.ElementsMatch(t, allPermissions, Permissions(models.RoleOwner))
}

func TestCatalog_AdminCannotManageOwnership(t *testing.T) {
	for _, p := range []models.Permission{
		models.PermissionDeleteWorkspace,
		models.PermissionChangeMemberRole,
		models.PermissionRemoveMember,
	} {
		assert.False(t, HasPermission(models.RoleAdmin, p), "admin should not have %s", p)
	}
	assert.True(t, HasPermission(models.RoleAdmin, models.PermissionAddMember))
	assert.True(t, HasPermission(models.RoleAdmin, models.PermissionManageWorkspaceSettings))
}

func TestCatalog_Member(t *testing.T) {
	assert.ElementsMatch(t, []models.Permission{
		models.PermissionCreateTask,
		models.PermissionEditTask,
		models.PermissionViewOnly,
	}, Permissions(models.RoleMember))
}

func TestCatalog_StrictlyDecreasing(t *testing.T) {
	owner := Permissions(models.RoleOwner)
	admin := Permissions(models.RoleAdmin)
	member := Permissions(models.RoleMember)

	assert.Subset(t, owner, admin)
	assert.Subset(t, admin, member)
	assert.Greater(t, len(owner), len(admin))
	assert.Greater(t, len(admin), len(member))
}

func TestPermissions_ReturnsCopy(t *testing.T) {
	perms := Permissions(models.RoleMember)
	perms[0] = models.PermissionDeleteWorkspace

	assert.False(t, HasPermission(models.RoleMember, models.PermissionDeleteWorkspace))
}

func TestPermissions_UnknownRole(t *testing.T) {
	assert.Nil(t, Permissions(models.RoleName("GUEST")))
}

// Every subset of the permission universe is accepted exactly when it is
// contained in the role's catalog entry.
func TestCheckPermission_SubsetProperty(t *testing.T) {
	n := len(allPermissions)
	for _, role := range Roles() {
		granted := map[models.Permission]bool{}
		for _, p := range Permissions(role) {
			granted[p] = true
		}

		for mask := 0; mask < 1<<n; mask++ {
			var required []models.Permission
			subset := true
			for i := 0; i < n; i++ {
				if mask&(1<<i) != 0 {
					required = append(required, allPermissions[i])
					if !granted[allPermissions[i]] {
						subset = false
					}
				}
			}

			err := CheckPermission(role, required...)
			if subset {
				require.NoError(t, err, "role=%s required=%v", role, required)
			} else {
				require.True(t, apperrors.IsUnauthorized(err), "role=%s required=%v", role, required)
			}
		}
	}
}

func TestCheckPermission_AllRequired(t *testing.T) {
	err := CheckPermission(models.RoleMember, models.PermissionCreateTask, models.PermissionDeleteTask)

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestCheckPermission_UnknownRoleDenied(t *testing.T) {
	err := CheckPermission(models.RoleName("GUEST"), models.PermissionViewOnly)

	assert.True(t, apperrors.IsUnauthorized(err))
}
