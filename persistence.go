package main

import (
	"context"
	"time"

	"essaydesk/internal/store"
)

// openStore opens the essay database at path.
var openStore = func(path string) (*store.Store, error) {
	logInfo("Opening essay database: %s", path)
	return store.Open(path)
}

// pruneEssays removes essays older than the retention period. It is a no-op
// when retention is disabled.
func (app *App) pruneEssays(ctx context.Context, now time.Time) (int64, error) {
	if app.Retention <= 0 {
		return 0, nil
	}
	cutoff := now.Add(-app.Retention)
	removed, err := app.Store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logWarn("Failed to prune essays older than %v: %v", app.Retention, err)
		return 0, err
	}
	if removed > 0 {
		logInfo("Essay cleanup completed: removed %d essays saved before %s", removed, cutoff.UTC().Format(time.RFC3339))
	}
	return removed, nil
}

// runRetention prunes old essays every CleanupInterval until ctx is done.
func (app *App) runRetention(ctx context.Context) {
	if app.Retention <= 0 {
		logInfo("Essay retention disabled, keeping essays forever")
		return
	}
	interval := app.CleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}
	logInfo("Pruning essays older than %v every %v", app.Retention, interval)
	_, _ = app.pruneEssays(ctx, time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			_, _ = app.pruneEssays(ctx, now)
		}
	}
}
