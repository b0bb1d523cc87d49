package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/reader/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database    *database.Database
	Books       BookStore
	Highlights  HighlightStore
	Tracker     LocationTracker
	Preferences PreferencesStore

	// Task queue (optional). Without it deleted books are purged inline.
	Purger     PurgeScheduler
	TaskStatus TaskStatusReader
	Cleanup    CleanupScheduler

	// Application info
	Version string

	Logger *zap.Logger
}
