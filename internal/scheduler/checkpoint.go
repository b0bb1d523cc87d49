package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Flusher persists pending state on demand.
type Flusher interface {
	Flush(ctx context.Context) error
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule checks a cron spec: five standard fields or a descriptor
// such as "@every 1m" or "@hourly".
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// CheckpointScheduler periodically flushes reading locations that are still
// waiting for their quiet period to end.
type CheckpointScheduler struct {
	flusher  Flusher
	schedule string
	timeout  time.Duration
	logger   *zap.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCheckpointScheduler creates a scheduler running flusher on schedule. An
// empty schedule disables it.
func NewCheckpointScheduler(flusher Flusher, schedule string, logger *zap.Logger) *CheckpointScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckpointScheduler{
		flusher:  flusher,
		schedule: schedule,
		timeout:  30 * time.Second,
		logger:   logger.Named("checkpoint"),
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler. It stops on its own once ctx is done.
func (s *CheckpointScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		s.logger.Info("Checkpoint scheduler disabled")
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runCheckpoint)
	if err != nil {
		return fmt.Errorf("failed to schedule checkpoint job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Checkpoint scheduler started",
		zap.String("schedule", s.schedule), zap.Time("next_run", s.cron.Entry(entryID).Next))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running checkpoint to complete and stops the scheduler.
func (s *CheckpointScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	s.logger.Info("Checkpoint scheduler stopped")
}

// RunNow triggers an immediate checkpoint in the background.
func (s *CheckpointScheduler) RunNow() {
	go s.runCheckpoint()
}

func (s *CheckpointScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next checkpoint will occur
func (s *CheckpointScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	next := s.cron.Entry(s.entryID).Next
	if next.IsZero() {
		return nil
	}
	return &next
}

func (s *CheckpointScheduler) runCheckpoint() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.flusher.Flush(ctx); err != nil {
		s.logger.Warn("Checkpoint failed", zap.Error(err))
		return
	}
	s.logger.Debug("Checkpoint completed", zap.Duration("took", time.Since(start)))
}
