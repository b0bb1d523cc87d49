package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./reader.db"

	// DefaultCheckpointSchedule flushes pending reading positions once a minute
	DefaultCheckpointSchedule = "@every 1m"

	// DefaultCleanupSchedule sweeps books whose purge never ran
	DefaultCleanupSchedule = "@daily"
)
