package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"tubelist/internal/links"
	"tubelist/internal/models"
	"tubelist/internal/shared"
	"tubelist/internal/tasks"
	"tubelist/internal/ui"
)

// reloadConfig replaces the runner config when the --config flag points at
// an existing file.
func (r *Runner) reloadConfig(cmd *cli.Command) {
	path := cmd.String("config")
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, keeping current settings", "path", path, "error", err)
		return
	}
	r.config = config
}

// readLinks parses the link file named by the file argument, falling back
// to the configured input path.
func (r *Runner) readLinks(cmd *cli.Command) ([]links.VideoID, error) {
	path := cmd.StringArg("file")
	if path == "" {
		path = r.config.Input.LinksPath
	}

	ids, skipped, err := links.ReadFile(path)
	if err != nil {
		return nil, err
	}

	for _, line := range skipped {
		r.logger.Warn("skipping line with no video id", "line", line)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s contains no recognizable YouTube links", shared.ErrNoInput, path)
	}

	r.logger.Info("parsed link file", "path", path, "videos", len(ids), "skipped", len(skipped))
	return ids, nil
}

// playlistSpec assembles playlist metadata from flags over config defaults.
func (r *Runner) playlistSpec(cmd *cli.Command) (tasks.PlaylistSpec, error) {
	spec := tasks.PlaylistSpec{
		Title:       r.config.Playlist.Title,
		Description: r.config.Playlist.Description,
	}

	privacy, err := models.ParsePrivacy(r.config.Playlist.Privacy)
	if err != nil {
		return spec, fmt.Errorf("invalid config: %w", err)
	}
	spec.Privacy = privacy

	if title := cmd.String("title"); title != "" {
		spec.Title = title
	}
	if description := cmd.String("description"); description != "" {
		spec.Description = description
	}
	if flag := cmd.String("privacy"); flag != "" {
		if spec.Privacy, err = models.ParsePrivacy(flag); err != nil {
			return spec, err
		}
	}

	if cmd.Bool("interactive") {
		return ui.Collect(spec)
	}
	return spec, nil
}

// Build parses the link file, creates the playlist and adds every video.
func (r *Runner) Build(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	ids, err := r.readLinks(cmd)
	if err != nil {
		return err
	}

	spec, err := r.playlistSpec(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		r.writePlain("Would create playlist %q (%s) with %d videos:\n", spec.Title, spec.Privacy, len(ids))
		for _, id := range ids {
			r.writePlain("  %s\n", id)
		}
		return nil
	}

	service, err := r.playlistService(ctx)
	if err != nil {
		return err
	}

	engine := tasks.NewBuildEngine(service, r.logger)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.PhaseCreate:
				r.writePlain("%s\n", update.Message)
			case tasks.PhaseAdd:
				r.writePlain("  %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Build(ctx, ids, spec, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.recordRun(result)

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlainln("Added %d out of %d videos.", result.Added, result.Attempted)
	if result.NotFound > 0 {
		r.writePlain("Not found or private: %d\n", result.NotFound)
	}
	if result.Duplicates > 0 {
		r.writePlain("Already in playlist: %d\n", result.Duplicates)
	}
	if result.Failed > 0 {
		r.writePlain("Failed: %d\n", result.Failed)
	}
	r.writePlain("\nPlaylist: %s\n", result.Playlist.URL())

	return nil
}

// Parse extracts video IDs from the link file and prints them.
func (r *Runner) Parse(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	ids, err := r.readLinks(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(ids, true)
	}

	for _, id := range ids {
		r.writePlain("%s\n", id)
	}
	return nil
}
