package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Logging
		Progress
		Tasks
		Defaults
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Logging struct {
		Level       string // debug, info, warn, error
		Development bool   // Console encoder with colors and stack traces on warn
	}
	Progress struct {
		QuietPeriod        time.Duration // Delay before a reported location is persisted
		CheckpointSchedule string        // Cron spec for flushing pending locations, "" disables
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
		CleanupSchedule string // Cron spec for sweeping deleted books, "" disables
	}
	// Defaults are the reader preferences used until the user stores their own.
	Defaults struct {
		FontFamily     string
		FontSize       float64
		LineHeight     float64
		Background     string
		Foreground     string
		Flow           string
		Spread         string
		MinSpreadWidth int
		ScrollBehavior string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	// An empty variable is a value, so CHECKPOINT_SCHEDULE= disables the job.
	v.AllowEmptyEnv(true)
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)

	// Reading progress
	v.SetDefault("location_quiet_period", "500ms")
	v.SetDefault("checkpoint_schedule", DefaultCheckpointSchedule)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("cleanup_schedule", DefaultCleanupSchedule)

	// Reader preference defaults
	v.SetDefault("default_font_family", "serif")
	v.SetDefault("default_font_size", 16)
	v.SetDefault("default_line_height", 1.5)
	v.SetDefault("default_background", "#ffffff")
	v.SetDefault("default_foreground", "#000000")
	v.SetDefault("default_flow", "paginated")
	v.SetDefault("default_spread", "auto")
	v.SetDefault("default_min_spread_width", 800)
	v.SetDefault("default_scroll_behavior", "smooth")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Logging: Logging{
			Level:       v.GetString("LOG_LEVEL"),
			Development: v.GetBool("LOG_DEVELOPMENT"),
		},
		Progress: Progress{
			QuietPeriod:        v.GetDuration("LOCATION_QUIET_PERIOD"),
			CheckpointSchedule: v.GetString("CHECKPOINT_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
			CleanupSchedule: v.GetString("CLEANUP_SCHEDULE"),
		},
		Defaults: Defaults{
			FontFamily:     v.GetString("DEFAULT_FONT_FAMILY"),
			FontSize:       v.GetFloat64("DEFAULT_FONT_SIZE"),
			LineHeight:     v.GetFloat64("DEFAULT_LINE_HEIGHT"),
			Background:     v.GetString("DEFAULT_BACKGROUND"),
			Foreground:     v.GetString("DEFAULT_FOREGROUND"),
			Flow:           v.GetString("DEFAULT_FLOW"),
			Spread:         v.GetString("DEFAULT_SPREAD"),
			MinSpreadWidth: v.GetInt("DEFAULT_MIN_SPREAD_WIDTH"),
			ScrollBehavior: v.GetString("DEFAULT_SCROLL_BEHAVIOR"),
		},
	}
}
