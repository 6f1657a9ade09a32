package rbac

import (
	"context"
	"errors"

	"github.com/dimitrije/teamsync-api/internal/apperrors"
	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/internal/observability"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

const DefaultRoleCacheSize = 16

type Resolver struct {
	db      *database.DB
	roles   *lru.Cache[uuid.UUID, models.Role]
	metrics *observability.Metrics
}

func NewResolver(db *database.DB, cacheSize int, metrics *observability.Metrics) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultRoleCacheSize
	}
	cache, err := lru.New[uuid.UUID, models.Role](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{db: db, roles: cache, metrics: metrics}, nil
}

// ResolveRole returns the role userID holds in workspaceID. A missing
// workspace is NotFound; a missing membership is Unauthorized.
func (r *Resolver) ResolveRole(ctx context.Context, userID, workspaceID uuid.UUID) (*models.Role, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM workspaces WHERE id = $1)
	`, workspaceID).Scan(&exists)
	if err != nil {
		return nil, apperrors.Internal("failed to look up workspace", err)
	}
	if !exists {
		return nil, apperrors.NotFound("workspace not found")
	}

	var roleID uuid.UUID
	err = r.db.Pool.QueryRow(ctx, `
		SELECT role_id FROM members WHERE user_id = $1 AND workspace_id = $2
	`, userID, workspaceID).Scan(&roleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Unauthorized("you are not a member of this workspace")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to look up membership", err)
	}

	return r.RoleByID(ctx, roleID)
}

// RoleByID loads a role record, serving repeats from the LRU. Roles are
// never mutated after seeding so cached entries do not go stale.
func (r *Resolver) RoleByID(ctx context.Context, roleID uuid.UUID) (*models.Role, error) {
	if role, ok := r.roles.Get(roleID); ok {
		r.metrics.RecordRoleCache(true)
		return &role, nil
	}
	r.metrics.RecordRoleCache(false)

	role, err := scanRole(r.db.Pool.QueryRow(ctx, `
		SELECT id, name, permissions, created_at, updated_at FROM roles WHERE id = $1
	`, roleID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("role not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load role", err)
	}

	r.roles.Add(role.ID, *role)
	return role, nil
}

// Authorize resolves the caller's role and checks it against required.
func (r *Resolver) Authorize(ctx context.Context, userID, workspaceID uuid.UUID, required ...models.Permission) (*models.Role, error) {
	role, err := r.ResolveRole(ctx, userID, workspaceID)
	if err != nil {
		r.metrics.RecordAuthz("none", "denied")
		return nil, err
	}

	if err := CheckPermission(role.Name, required...); err != nil {
		r.metrics.RecordAuthz(string(role.Name), "denied")
		logrus.WithFields(logrus.Fields{
			"user_id":      userID,
			"workspace_id": workspaceID,
			"role":         role.Name,
			"required":     required,
		}).Debug("permission denied")
		return nil, err
	}

	r.metrics.RecordAuthz(string(role.Name), "allowed")
	return role, nil
}

func scanRole(row pgx.Row) (*models.Role, error) {
	var role models.Role
	var perms []string
	if err := row.Scan(&role.ID, &role.Name, &perms, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	role.Permissions = make([]models.Permission, len(perms))
	for i, p := range perms {
		role.Permissions[i] = models.Permission(p)
	}
	return &role, nil
}
