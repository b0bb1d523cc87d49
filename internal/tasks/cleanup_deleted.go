package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

const CleanupDeletedBooksQueue = "cleanup_deleted_books"

// DeletedBooksCleaner removes books that were soft-deleted but never purged.
type DeletedBooksCleaner interface {
	PurgeDeletedBooks() (int64, error)
}

// CleanupDeletedBooksTask purges every soft-deleted book in one pass. It
// catches books whose purge task could not be enqueued.
type CleanupDeletedBooksTask struct{}

// Config returns the queue configuration for cleanup tasks.
func (t CleanupDeletedBooksTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        CleanupDeletedBooksQueue,
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupDeletedBooksProcessor creates a processor function for CleanupDeletedBooksTask.
func CleanupDeletedBooksProcessor(cleaner DeletedBooksCleaner, logger *zap.Logger) backlite.QueueProcessor[CleanupDeletedBooksTask] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task CleanupDeletedBooksTask) error {
		if cleaner == nil {
			return fmt.Errorf("deleted books cleaner not configured")
		}

		purged, err := cleaner.PurgeDeletedBooks()
		if err != nil {
			return fmt.Errorf("cleanup deleted books: %w", err)
		}

		logger.Info("Cleaned up deleted books", zap.Int64("purged", purged))
		return nil
	}
}

// NewCleanupDeletedBooksQueue creates a backlite queue for cleanup tasks.
func NewCleanupDeletedBooksQueue(cleaner DeletedBooksCleaner, logger *zap.Logger) backlite.Queue {
	return backlite.NewQueue(CleanupDeletedBooksProcessor(cleaner, logger))
}

// ScheduleCleanup enqueues a CleanupDeletedBooksTask and returns its task ID.
func (c *Client) ScheduleCleanup() (string, error) {
	ids, err := c.Add(CleanupDeletedBooksTask{}).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue deleted books cleanup: %w", err)
	}
	return ids[0], nil
}
