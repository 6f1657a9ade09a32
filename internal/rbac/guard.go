package rbac

import (
	"github.com/dimitrije/teamsync-api/internal/apperrors"
	"github.com/dimitrije/teamsync-api/internal/models"
)

// CheckPermission succeeds only when every required permission is granted to
// role by the catalog.
func CheckPermission(role models.RoleName, required ...models.Permission) error {
	for _, permission := range required {
		if !HasPermission(role, permission) {
			return apperrors.Unauthorized("you do not have the necessary permissions to perform this action")
		}
	}
	return nil
}
