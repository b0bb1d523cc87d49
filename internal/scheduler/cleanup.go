package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CleanupEnqueuer queues a sweep of deleted books.
type CleanupEnqueuer interface {
	ScheduleCleanup() (string, error)
}

// CleanupScheduler periodically enqueues a cleanup of books that were deleted
// but never purged. The work itself runs on the task queue.
type CleanupScheduler struct {
	enqueuer CleanupEnqueuer
	schedule string
	logger   *zap.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewCleanupScheduler creates a scheduler enqueuing cleanups on schedule. An
// empty schedule disables it.
func NewCleanupScheduler(enqueuer CleanupEnqueuer, schedule string, logger *zap.Logger) *CleanupScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupScheduler{
		enqueuer: enqueuer,
		schedule: schedule,
		logger:   logger.Named("cleanup"),
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler. It stops on its own once ctx is done.
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		s.logger.Info("Cleanup scheduler disabled")
		return nil
	}
	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.enqueue)
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}
	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Cleanup scheduler started",
		zap.String("schedule", s.schedule), zap.Time("next_run", s.cron.Entry(entryID).Next))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop stops the scheduler. Already enqueued cleanups still run.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	s.logger.Info("Cleanup scheduler stopped")
}

func (s *CleanupScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *CleanupScheduler) enqueue() {
	taskID, err := s.enqueuer.ScheduleCleanup()
	if err != nil {
		s.logger.Warn("Unable to enqueue cleanup", zap.Error(err))
		return
	}
	s.logger.Debug("Cleanup enqueued", zap.String("task_id", taskID))
}
