package rbac

import (
	"context"
	"fmt"

	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

// SeedRoles inserts the catalog roles that are not stored yet and returns how
// many were added. Existing roles are left untouched, so running it again is
// a no-op.
func SeedRoles(ctx context.Context, db *database.DB) (int, error) {
	inserted := 0
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		for _, role := range Roles() {
			tag, err := tx.Exec(ctx, `
				INSERT INTO roles (name, permissions)
				VALUES ($1, $2)
				ON CONFLICT (name) DO NOTHING
			`, role, permissionStrings(role))
			if err != nil {
				return fmt.Errorf("failed to seed role %s: %w", role, err)
			}

			if tag.RowsAffected() == 0 {
				logrus.WithField("role", role).Info("role already exists")
				continue
			}
			inserted++
			logrus.WithField("role", role).Info("role added")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
