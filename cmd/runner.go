package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"tubelist/internal/auth"
	"tubelist/internal/models"
	"tubelist/internal/repositories"
	"tubelist/internal/server"
	"tubelist/internal/services"
	"tubelist/internal/shared"
	"tubelist/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	youtube services.PlaylistService
	logger  shared.Reporter
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
// YouTube is optional; when nil the runner builds an authenticated
// service on first use.
type RunnerOpts struct {
	Config  *shared.Config
	YouTube services.PlaylistService
	Logger  shared.Reporter
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		youtube: opts.YouTube,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		buildCommand, parseCommand, authCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// authenticator builds the OAuth authenticator from config.
func (r *Runner) authenticator() *auth.Authenticator {
	creds := r.config.Credentials.YouTube
	store := auth.NewStore(creds.TokenPath)
	flow := server.NewBrowserFlow(r.config.Server.Host, r.config.Server.Port, r.logger)
	return auth.NewAuthenticator(creds.ClientSecretsPath, creds.Scopes, store, flow, r.logger)
}

// playlistService returns the configured service, authenticating on first use.
func (r *Runner) playlistService(ctx context.Context) (services.PlaylistService, error) {
	if r.youtube != nil {
		return r.youtube, nil
	}

	client, err := r.authenticator().Client(ctx)
	if err != nil {
		return nil, err
	}

	r.youtube = services.NewYouTubeService(client, "")
	return r.youtube, nil
}

// recordRun persists a build result to the run history database.
// History is best-effort: failures are logged and never fail the build.
func (r *Runner) recordRun(result *tasks.BuildResult) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warn("failed to open history database, skipping run record", "error", err)
		return
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		r.logger.Warn("failed to migrate history database, skipping run record", "error", err)
		return
	}

	repo := repositories.NewRunRepository(db)
	run := &models.Run{
		Playlist:   *result.Playlist,
		Attempted:  result.Attempted,
		Added:      result.Added,
		NotFound:   result.NotFound,
		Duplicates: result.Duplicates,
		Failed:     result.Failed,
	}
	if err := repo.Create(run); err != nil {
		r.logger.Warn("failed to record run", "error", err)
		return
	}
	r.logger.Info("run recorded", "id", run.RunID)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
