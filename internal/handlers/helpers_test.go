package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/dimitrije/teamsync-api/internal/middleware"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
)

// route mounts a single handler behind the bearer middleware and returns a
// client authenticated as userID.
func route(t *testing.T, method, path string, h drift.HandlerFunc, userID uuid.UUID) *testutil.HTTPTestClient {
	t.Helper()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(testutil.TestJWTService()))

	switch method {
	case http.MethodGet:
		app.Get(path, h)
	case http.MethodPost:
		app.Post(path, h)
	case http.MethodPatch:
		app.Patch(path, h)
	case http.MethodDelete:
		app.Delete(path, h)
	default:
		t.Fatalf("unsupported method %s", method)
	}

	return testutil.NewHTTPTestClient(t, app).AsUser(userID, "user@example.com")
}

// publicRoute mounts a handler without authentication.
func publicRoute(t *testing.T, method, path string, h drift.HandlerFunc) *testutil.HTTPTestClient {
	t.Helper()

	app := drift.New()
	app.Use(driftmw.BodyParser())

	switch method {
	case http.MethodGet:
		app.Get(path, h)
	case http.MethodPost:
		app.Post(path, h)
	default:
		t.Fatalf("unsupported method %s", method)
	}

	return testutil.NewHTTPTestClient(t, app)
}

func perms(p ...models.Permission) []models.Permission {
	return p
}

func roleFixture(name models.RoleName) *models.Role {
	return &models.Role{ID: uuid.New(), Name: name}
}

func workspaceFixture(ownerID uuid.UUID) *models.Workspace {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Workspace{
		ID:         uuid.New(),
		Name:       "Acme",
		OwnerID:    ownerID,
		InviteCode: "ab12cd34",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
