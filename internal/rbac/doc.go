// Package rbac holds the workspace authorization core: the static
// role-to-permission catalog, the guard that checks a role against a set of
// required permissions, and the resolver that turns a (user, workspace) pair
// into the member's role.
//
// Handlers call Resolver.Authorize before any workspace-scoped action:
//
//	role, err := resolver.Authorize(ctx, userID, workspaceID, models.PermissionCreateTask)
//
// which is ResolveRole followed by CheckPermission.
package rbac
