// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"tubelist/internal/links"
	"tubelist/internal/models"
)

// MockPlaylistService is a test double for [services.PlaylistService] with
// configurable behavior per method.
type MockPlaylistService struct {
	CreateFunc func(ctx context.Context, title, description string, privacy models.Privacy) (*models.Playlist, error)
	AddFunc    func(ctx context.Context, playlistID string, videoID links.VideoID) error

	CreateCalls int
	AddCalls    []links.VideoID
}

func (m *MockPlaylistService) CreatePlaylist(ctx context.Context, title, description string, privacy models.Privacy) (*models.Playlist, error) {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, title, description, privacy)
	}
	return &models.Playlist{ID: "PLmock", Title: title, Description: description, Privacy: privacy}, nil
}

func (m *MockPlaylistService) AddVideo(ctx context.Context, playlistID string, videoID links.VideoID) error {
	m.AddCalls = append(m.AddCalls, videoID)
	if m.AddFunc != nil {
		return m.AddFunc(ctx, playlistID, videoID)
	}
	return nil
}

func (m *MockPlaylistService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
