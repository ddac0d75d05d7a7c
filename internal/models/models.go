// package models defines the data model for the playlist builder
package models

import (
	"fmt"
	"time"
)

// Privacy is the visibility of a playlist on YouTube.
type Privacy string

const (
	PrivacyPublic   Privacy = "public"
	PrivacyPrivate  Privacy = "private"
	PrivacyUnlisted Privacy = "unlisted"
)

// ParsePrivacy validates a privacy string from flags or config.
func ParsePrivacy(s string) (Privacy, error) {
	switch Privacy(s) {
	case PrivacyPublic, PrivacyPrivate, PrivacyUnlisted:
		return Privacy(s), nil
	default:
		return "", fmt.Errorf("invalid privacy status %q: must be public, private or unlisted", s)
	}
}

// Playlist represents a playlist created on YouTube.
type Playlist struct {
	ID          string
	Title       string
	Description string
	Privacy     Privacy
}

// URL returns the public watch URL for the playlist.
func (p Playlist) URL() string {
	return "https://www.youtube.com/playlist?list=" + p.ID
}

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid
}

// Repository defines the interface for data access operations.
type Repository[T Model] interface {
	Create(model T) error        // Create inserts a new model into the database
	Get(id string) (T, error)    // Get retrieves a model by its ID
	List(limit int) ([]T, error) // List retrieves the most recent models, newest first
	Delete(id string) error      // Delete removes a model from the database by its ID
}

// Run records the outcome of one playlist build.
type Run struct {
	RunID      string    `json:"id"`
	Created    time.Time `json:"created_at"`
	Playlist   Playlist  `json:"playlist"`
	Attempted  int       `json:"attempted"`
	Added      int       `json:"added"`
	NotFound   int       `json:"not_found"`
	Duplicates int       `json:"duplicates"`
	Failed     int       `json:"failed"`
}

func (r *Run) ID() string           { return r.RunID }
func (r *Run) CreatedAt() time.Time { return r.Created }

// Validate checks run invariants before persistence.
func (r *Run) Validate() error {
	if r.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if r.Playlist.ID == "" {
		return fmt.Errorf("playlist id is required")
	}
	if r.Added+r.NotFound+r.Duplicates+r.Failed > r.Attempted {
		return fmt.Errorf("run counts exceed attempted total")
	}
	return nil
}
