package services

import (
	"context"
	"fmt"

	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/dimitrije/teamsync-api/internal/models"
	"golang.org/x/sync/errgroup"
)

// taskAnalytics runs the three task counts for the tasks matched by where
// concurrently. where may reference args as $1..$n.
func taskAnalytics(ctx context.Context, q database.Querier, where string, args ...any) (*models.TaskAnalytics, error) {
	statusArg := fmt.Sprintf("$%d", len(args)+1)
	withStatus := append(append([]any{}, args...), models.TaskStatusDone)

	var analytics models.TaskAnalytics
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return q.QueryRow(gctx, `SELECT COUNT(*) FROM tasks WHERE `+where, args...).Scan(&analytics.TotalTasks)
	})
	g.Go(func() error {
		return q.QueryRow(gctx, `SELECT COUNT(*) FROM tasks WHERE `+where+` AND due_date < NOW() AND status <> `+statusArg, withStatus...).Scan(&analytics.OverdueTasks)
	})
	g.Go(func() error {
		return q.QueryRow(gctx, `SELECT COUNT(*) FROM tasks WHERE `+where+` AND status = `+statusArg, withStatus...).Scan(&analytics.CompletedTasks)
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	return &analytics, nil
}
