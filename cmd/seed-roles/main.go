package main

import (
	"context"
	"fmt"

	"github.com/dimitrije/teamsync-api/internal/config"
	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/dimitrije/teamsync-api/internal/observability"
	"github.com/dimitrije/teamsync-api/internal/rbac"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	observability.SetupLogger(cfg.Env, cfg.LogLevel)

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	inserted, err := rbac.SeedRoles(ctx, db)
	if err != nil {
		logrus.Fatalf("Failed to seed roles: %v", err)
	}

	fmt.Printf("Seeded %d role(s); %d already present\n", inserted, len(rbac.Roles())-inserted)
}
