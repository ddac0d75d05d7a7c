package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"tubelist/internal/shared"
)

func main() {
	console := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var logger shared.Reporter = console
	if config.Logging.FilePath != "" {
		if tee, err := shared.NewTeeReporter(console, config.Logging.FilePath); err == nil {
			logger = tee
		} else {
			console.Warn("failed to open log file, logging to console only", "path", config.Logging.FilePath, "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "tubelist",
		Usage:    "Build a YouTube playlist from a file of video links",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		exit(logger, err)
	}
}

// exit maps known failures to actionable messages before terminating.
func exit(logger shared.Reporter, err error) {
	switch {
	case errors.Is(err, shared.ErrConfigMissing):
		logger.Error(err.Error())
		logger.Error("download the OAuth client file from the Google Cloud console and place it at the configured client_secrets_path")
	case errors.Is(err, shared.ErrNoInput):
		logger.Error(err.Error())
		logger.Error("add one YouTube link per line to the input file")
	case errors.Is(err, shared.ErrFlowAborted):
		logger.Error("authorization did not complete", "error", err)
	default:
		logger.Error("application error", "error", err)
	}
	os.Exit(1)
}
