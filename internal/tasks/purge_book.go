package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const PurgeBookQueue = "purge_book"

// BookPurger permanently removes a book together with its highlights and
// reading progress.
type BookPurger interface {
	PurgeBook(id uint) error
}

// PurgeBookTask hard-deletes a book that was soft-deleted through the API.
type PurgeBookTask struct {
	BookID uint `json:"book_id"`
}

// Config returns the queue configuration for purge tasks.
func (t PurgeBookTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        PurgeBookQueue,
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PurgeBookProcessor creates a processor function for PurgeBookTask.
func PurgeBookProcessor(purger BookPurger, logger *zap.Logger) backlite.QueueProcessor[PurgeBookTask] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task PurgeBookTask) error {
		if purger == nil {
			return fmt.Errorf("book purger not configured")
		}
		if task.BookID == 0 {
			return fmt.Errorf("book_id is required")
		}

		err := purger.PurgeBook(task.BookID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already purged by an earlier attempt.
			return nil
		}
		if err != nil {
			return fmt.Errorf("purge book %d: %w", task.BookID, err)
		}

		logger.Info("Purged book", zap.Uint("book_id", task.BookID))
		return nil
	}
}

// NewPurgeBookQueue creates a backlite queue for purge tasks.
func NewPurgeBookQueue(purger BookPurger, logger *zap.Logger) backlite.Queue {
	return backlite.NewQueue(PurgeBookProcessor(purger, logger))
}

// SchedulePurge enqueues a PurgeBookTask and returns its task ID.
func (c *Client) SchedulePurge(bookID uint) (string, error) {
	ids, err := c.Add(PurgeBookTask{BookID: bookID}).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue purge of book %d: %w", bookID, err)
	}
	return ids[0], nil
}
