package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/teamsync-api/internal/config"
	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/dimitrije/teamsync-api/internal/handlers"
	authmw "github.com/dimitrije/teamsync-api/internal/middleware"
	"github.com/dimitrije/teamsync-api/internal/observability"
	"github.com/dimitrije/teamsync-api/internal/rbac"
	"github.com/dimitrije/teamsync-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
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

	if _, err := rbac.SeedRoles(ctx, db); err != nil {
		logrus.Fatalf("Failed to seed roles: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	resolver, err := rbac.NewResolver(db, cfg.RoleCacheSize, metrics)
	if err != nil {
		logrus.Fatalf("Failed to create role resolver: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db, metrics)
	tokenService := services.NewTokenService(db)
	workspaceService := services.NewWorkspaceService(db, metrics)
	projectService := services.NewProjectService(db)
	taskService := services.NewTaskService(db)

	authHandler := handlers.NewAuthHandler(cfg, userService, tokenService, jwtService)
	userHandler := handlers.NewUserHandler(userService, resolver)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, resolver)
	projectHandler := handlers.NewProjectHandler(projectService, resolver)
	taskHandler := handlers.NewTaskHandler(taskService, resolver)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(authmw.RequestLogger())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/:provider/consent", authHandler.GetConsentURL)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/exchange", authHandler.ExchangeCode)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)
	protected.Post("/users/me/current-workspace", userHandler.SwitchWorkspace)

	protected.Get("/workspaces", workspaceHandler.List)
	protected.Post("/workspaces", workspaceHandler.Create)
	protected.Get("/workspaces/:workspaceId", workspaceHandler.Get)
	protected.Patch("/workspaces/:workspaceId", workspaceHandler.Update)
	protected.Delete("/workspaces/:workspaceId", workspaceHandler.Delete)
	protected.Get("/workspaces/:workspaceId/analytics", workspaceHandler.Analytics)
	protected.Post("/workspaces/:workspaceId/invite-code", workspaceHandler.ResetInviteCode)
	protected.Get("/workspaces/:workspaceId/members", workspaceHandler.GetMembers)
	protected.Patch("/workspaces/:workspaceId/members/:userId/role", workspaceHandler.ChangeMemberRole)
	protected.Delete("/workspaces/:workspaceId/members/:userId", workspaceHandler.RemoveMember)
	protected.Post("/invites/:inviteCode/join", workspaceHandler.Join)

	protected.Get("/workspaces/:workspaceId/projects", projectHandler.List)
	protected.Post("/workspaces/:workspaceId/projects", projectHandler.Create)
	protected.Get("/workspaces/:workspaceId/projects/:projectId", projectHandler.Get)
	protected.Patch("/workspaces/:workspaceId/projects/:projectId", projectHandler.Update)
	protected.Delete("/workspaces/:workspaceId/projects/:projectId", projectHandler.Delete)
	protected.Get("/workspaces/:workspaceId/projects/:projectId/analytics", projectHandler.Analytics)

	protected.Get("/workspaces/:workspaceId/tasks", taskHandler.List)
	protected.Delete("/workspaces/:workspaceId/tasks/:taskId", taskHandler.Delete)
	protected.Post("/workspaces/:workspaceId/projects/:projectId/tasks", taskHandler.Create)
	protected.Get("/workspaces/:workspaceId/projects/:projectId/tasks/:taskId", taskHandler.Get)
	protected.Patch("/workspaces/:workspaceId/projects/:projectId/tasks/:taskId", taskHandler.Update)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			removed, err := tokenService.CleanupExpired(context.Background())
			if err != nil {
				logrus.WithError(err).Warn("refresh token cleanup failed")
				continue
			}
			logrus.WithField("removed", removed).Debug("expired refresh tokens removed")
		}
	}()

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           observability.Handler(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logrus.Infof("Metrics listening on %s", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("metrics server failed")
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logrus.Infof("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			logrus.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("metrics server shutdown failed")
	}
}
