// package services defines interface PlaylistService for interacting with
// the video platform's HTTP API
package services

import (
	"context"
	"fmt"

	"tubelist/internal/links"
	"tubelist/internal/models"
)

// PlaylistService defines the two remote operations a playlist build needs.
type PlaylistService interface {
	// CreatePlaylist creates a new playlist and returns it with its
	// server-assigned identifier. Any failure here is fatal for the run.
	CreatePlaylist(ctx context.Context, title, description string, privacy models.Privacy) (*models.Playlist, error)

	// AddVideo inserts a video into the playlist. Expected item-level
	// failures are classified as shared.ErrVideoNotFound or
	// shared.ErrDuplicateVideo; anything else non-2xx is an *APIError.
	AddVideo(ctx context.Context, playlistID string, videoID links.VideoID) error

	// Name returns the name of the service (e.g., "YouTube")
	Name() string
}

// APIError is an unclassified non-2xx response from the remote API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube API error: status %d: %s", e.StatusCode, e.Body)
}
