// package tasks implements the playlist build pipeline.
//
// The core abstraction is BuildEngine, which creates a playlist and appends
// each parsed video to it, classifying item-level failures without halting
// the run. Operations emit progress updates via channels for non-blocking
// status reporting to the CLI layer.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"tubelist/internal/links"
	"tubelist/internal/models"
	"tubelist/internal/services"
	"tubelist/internal/shared"
)

// PlaylistSpec describes the playlist to create, populated once at startup
// from flags, config, or the interactive form.
type PlaylistSpec struct {
	Title       string
	Description string
	Privacy     models.Privacy
}

// SkippedVideo records one video that could not be added and why.
type SkippedVideo struct {
	ID     links.VideoID
	Reason string
}

// BuildResult contains all counts from a playlist build.
type BuildResult struct {
	Playlist   *models.Playlist // Created playlist
	Attempted  int              // Videos attempted
	Added      int              // Videos actually added
	NotFound   int              // Skipped: deleted or private videos
	Duplicates int              // Skipped: already in the playlist
	Failed     int              // Skipped: other API errors
	Skipped    []SkippedVideo   // Per-video skip reasons, in input order
}

// SkippedCount returns how many attempted videos were not added.
func (r *BuildResult) SkippedCount() int {
	return r.NotFound + r.Duplicates + r.Failed
}

// BuildEngine orchestrates the sequential build pipeline.
type BuildEngine struct {
	client services.PlaylistService
	log    shared.Reporter
}

// NewBuildEngine creates a BuildEngine with the provided service.
func NewBuildEngine(client services.PlaylistService, logger shared.Reporter) *BuildEngine {
	return &BuildEngine{client: client, log: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *BuildEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full, skip this update
	}
}

// Build creates the playlist and appends every video in ids to it.
//
// A NotFound or Duplicate response for one item never halts processing of
// subsequent items; only playlist creation failure aborts the run. No
// partial playlist is rolled back.
func (e *BuildEngine) Build(ctx context.Context, ids []links.VideoID, spec PlaylistSpec, progress chan<- ProgressUpdate) (*BuildResult, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: playlist service not initialized", shared.ErrServiceUnavailable)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: nothing to add", shared.ErrNoInput)
	}

	e.sendProgress(progress, creatingPlaylistUpdate(spec.Title))

	playlist, err := e.client.CreatePlaylist(ctx, spec.Title, spec.Description, spec.Privacy)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	e.log.Info("playlist created", "title", playlist.Title, "id", playlist.ID)
	e.sendProgress(progress, playlistCreatedUpdate(playlist))

	result := &BuildResult{Playlist: playlist, Attempted: len(ids)}

	for i, id := range ids {
		e.sendProgress(progress, addVideoUpdate(i+1, len(ids), id))

		err := e.client.AddVideo(ctx, playlist.ID, id)
		switch {
		case err == nil:
			result.Added++
		case errors.Is(err, shared.ErrVideoNotFound):
			result.NotFound++
			result.Skipped = append(result.Skipped, SkippedVideo{ID: id, Reason: "not found or private"})
			e.log.Warn("video not found or private, skipping", "video", id)
		case errors.Is(err, shared.ErrDuplicateVideo):
			result.Duplicates++
			result.Skipped = append(result.Skipped, SkippedVideo{ID: id, Reason: "already in playlist"})
			e.log.Warn("video already in playlist, skipping", "video", id)
		default:
			result.Failed++
			result.Skipped = append(result.Skipped, SkippedVideo{ID: id, Reason: err.Error()})
			e.log.Error("failed to add video, skipping", "video", id, "error", err)
		}
	}

	e.sendProgress(progress, buildDoneUpdate(result))
	return result, nil
}
