package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/entrypoint"
	"github.com/mrlokans/reader/internal/logging"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

// prepare loads configuration from the environment and applies command line
// overrides before any command runs.
func prepare(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg = config.NewConfig()
	if path := cmd.String("database"); path != "" {
		cfg.Database.Path = path
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	var err error
	if logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Development); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	logger.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", Version), zap.String("runtime", runtime.Version()), zap.String("hash", Commit))
	return ctx, nil
}

func destroy(_ context.Context, _ *cli.Command) error {
	if logger != nil {
		// stdout/stderr cannot always be synced, nothing to report
		_ = logger.Sync()
	}
	return nil
}

var errWasHandled bool

func exitErrHandler(_ context.Context, _ *cli.Command, err error) {
	if logger != nil {
		logger.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	if port := cmd.Int("port"); port > 0 {
		cfg.HTTP.Port = int32(port)
	}
	return entrypoint.Run(ctx, cfg, Version, logger)
}

func theme(_ context.Context, cmd *cli.Command) error {
	out := os.Stdout
	if fname := cmd.Args().Get(0); fname != "" {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}
	return entrypoint.WriteTheme(cfg, out)
}

func version(_ context.Context, _ *cli.Command) error {
	fmt.Printf("reader %s (%s) : %s\n", Version, runtime.Version(), Commit)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	serveFlags := []cli.Flag{
		&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "listen on `PORT` instead of $PORT"},
	}

	app := &cli.Command{
		Name:            "reader",
		Usage:           "reading position and highlight service for the EPUB viewer",
		Version:         Version + " (" + runtime.Version() + ") : " + Commit,
		HideHelpCommand: true,
		Before:          prepare,
		After:           destroy,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "database", Aliases: []string{"db"}, Usage: "sqlite database `FILE` (overrides $DATABASE_PATH)"},
			&cli.StringFlag{Name: "log-level", Usage: "log `LEVEL`: debug, info, warn, error"},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server (default if no command given)",
				Flags:  serveFlags,
				Action: serve,
			},
			{
				Name:      "theme",
				Usage:     "Print the CSS theme for the stored reader style",
				ArgsUsage: "[DESTINATION]",
				Action:    theme,
			},
			{
				Name:   "version",
				Usage:  "Print version information",
				Action: version,
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
