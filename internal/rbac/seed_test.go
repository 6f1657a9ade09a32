package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRoles_InsertsMissingRoles(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	for _, role := range Roles() {
		mock.ExpectExec(`INSERT INTO roles \(name, permissions\)`).
			WithArgs(role, permissionStrings(role)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	inserted, err := SeedRoles(context.Background(), &database.DB{Pool: mock})

	require.NoError(t, err)
	assert.Equal(t, 3, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRoles_SkipsExisting(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO roles`).
		WithArgs(models.RoleOwner, permissionStrings(models.RoleOwner)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectExec(`INSERT INTO roles`).
		WithArgs(models.RoleAdmin, permissionStrings(models.RoleAdmin)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectExec(`INSERT INTO roles`).
		WithArgs(models.RoleMember, permissionStrings(models.RoleMember)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	inserted, err := SeedRoles(context.Background(), &database.DB{Pool: mock})

	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRoles_RollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO roles`).
		WithArgs(models.RoleOwner, permissionStrings(models.RoleOwner)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	inserted, err := SeedRoles(context.Background(), &database.DB{Pool: mock})

	assert.Error(t, err)
	assert.Zero(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
