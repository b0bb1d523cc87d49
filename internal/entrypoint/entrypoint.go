package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/database"
	http_controllers "github.com/mrlokans/reader/internal/http"
	"github.com/mrlokans/reader/internal/progress"
	"github.com/mrlokans/reader/internal/scheduler"
	"github.com/mrlokans/reader/internal/settingsstore"
	"github.com/mrlokans/reader/internal/tasks"
	"github.com/mrlokans/reader/internal/viewer"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until ctx is done, then shuts it down and calls
// onShutdown within the configured timeout.
func Serve(ctx context.Context, router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", zap.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting relocations before the final flush.
	err := srv.Shutdown(shutdownCtx)

	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}

	if err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server exiting")
	return nil
}

// Run wires the service together and serves until ctx is done.
func Run(ctx context.Context, cfg *config.Config, version string, logger *zap.Logger) error {
	logger.Info("Starting reader", zap.String("version", version))

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("Error closing database", zap.Error(err))
		}
	}()

	preferences := settingsstore.New(db, cfg.Defaults)
	tracker := progress.NewTracker(db.Locations, cfg.Progress.QuietPeriod, logger)

	checkpoints := scheduler.NewCheckpointScheduler(tracker, cfg.Progress.CheckpointSchedule, logger)
	if err := checkpoints.Start(ctx); err != nil {
		return err
	}
	defer checkpoints.Stop()

	routerCfg := http_controllers.RouterConfig{
		Database:    db,
		Books:       db.Books,
		Highlights:  db.Books,
		Tracker:     tracker,
		Preferences: preferences,
		Version:     version,
		Logger:      logger,
	}

	var taskClient *tasks.Client
	var cleanups *scheduler.CleanupScheduler
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logger.Warn("Error closing task client", zap.Error(err))
			}
		}()

		taskClient.Register(
			tasks.NewPurgeBookQueue(db.Books, logger),
			tasks.NewCleanupDeletedBooksQueue(db.Books, logger),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		cleanups = scheduler.NewCleanupScheduler(taskClient, cfg.Tasks.CleanupSchedule, logger)
		if err := cleanups.Start(ctx); err != nil {
			taskCtxCancel()
			return err
		}

		routerCfg.Purger = taskClient
		routerCfg.TaskStatus = taskClient
		routerCfg.Cleanup = taskClient
	} else {
		logger.Info("Task queue disabled, deleted books are purged immediately")
	}

	router := http_controllers.NewRouter(routerCfg)

	return Serve(ctx, router, cfg, logger, func(shutdownCtx context.Context) {
		checkpoints.Stop()

		if err := tracker.Flush(shutdownCtx); err != nil {
			logger.Error("Unable to save pending reading locations", zap.Error(err))
		}

		if taskClient != nil {
			cleanups.Stop()
			taskClient.Stop(shutdownCtx)
			taskCtxCancel()
		}
	})
}

// WriteTheme renders the theme stylesheet for the stored (or default) book
// style to w.
func WriteTheme(cfg *config.Config, w io.Writer) error {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	style, err := settingsstore.New(db, cfg.Defaults).GetBookStyle()
	if err != nil {
		return fmt.Errorf("failed to load book style: %w", err)
	}

	_, err = io.WriteString(w, viewer.Theme(style).CSS())
	return err
}
