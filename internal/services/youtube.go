// YouTube Data API v3 implementation of [PlaylistService]
//
// Request and response shapes based on
// https://developers.google.com/youtube/v3/docs/playlists/insert and
// https://developers.google.com/youtube/v3/docs/playlistItems/insert
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"tubelist/internal/links"
	"tubelist/internal/models"
	"tubelist/internal/shared"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// insertsPerSecond paces playlist-item inserts. This is client-side pacing
// under the API quota, not a retry/backoff policy.
const insertsPerSecond = 2

// maxErrorBody caps how much of an error response is kept for logs.
const maxErrorBody = 2048

type playlistSnippet struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type playlistStatus struct {
	PrivacyStatus string `json:"privacyStatus"`
}

type resourceID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

type playlistItemSnippet struct {
	PlaylistID string     `json:"playlistId"`
	ResourceID resourceID `json:"resourceId"`
}

// YouTubeService implements [PlaylistService] against the YouTube Data API.
//
// The HTTP client must already carry OAuth credentials.
type YouTubeService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewYouTubeService creates a service using the given authenticated client.
func NewYouTubeService(client *http.Client, baseURL string) *YouTubeService {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &YouTubeService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(insertsPerSecond), 1),
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// CreatePlaylist issues POST /playlists and returns the created playlist.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, title, description string, privacy models.Privacy) (*models.Playlist, error) {
	body := struct {
		Snippet playlistSnippet `json:"snippet"`
		Status  playlistStatus  `json:"status"`
	}{
		Snippet: playlistSnippet{Title: title, Description: description},
		Status:  playlistStatus{PrivacyStatus: string(privacy)},
	}

	status, respBody, err := y.post(ctx, "/playlists?part=snippet%2Cstatus", body)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{StatusCode: status, Body: truncate(respBody)}
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("failed to decode create response: %w", err)
	}
	if created.ID == "" {
		return nil, fmt.Errorf("create response missing playlist id")
	}

	return &models.Playlist{
		ID:          created.ID,
		Title:       title,
		Description: description,
		Privacy:     privacy,
	}, nil
}

// AddVideo issues POST /playlistItems, pacing calls through the limiter.
func (y *YouTubeService) AddVideo(ctx context.Context, playlistID string, videoID links.VideoID) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	body := struct {
		Snippet playlistItemSnippet `json:"snippet"`
	}{
		Snippet: playlistItemSnippet{
			PlaylistID: playlistID,
			ResourceID: resourceID{Kind: "youtube#video", VideoID: videoID.String()},
		},
	}

	status, respBody, err := y.post(ctx, "/playlistItems?part=snippet", body)
	if err != nil {
		return err
	}
	if status >= 200 && status < 300 {
		return nil
	}

	return classifyInsertError(status, respBody)
}

// post sends a JSON body and returns the status code and raw response body.
func (y *YouTubeService) post(ctx context.Context, endpoint string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, y.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

// classifyInsertError maps a failed playlist-item insert onto the error
// taxonomy. The duplicate case sniffs the response body because the API
// signals it only through the error reason text; this is brittle against
// wording changes, so the check stays confined to this one function.
func classifyInsertError(status int, body []byte) error {
	reason := strings.ToLower(string(body))
	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", shared.ErrVideoNotFound, status)
	case status == http.StatusBadRequest && strings.Contains(reason, "duplicate"):
		return fmt.Errorf("%w: status %d", shared.ErrDuplicateVideo, status)
	case status == http.StatusConflict && strings.Contains(reason, "duplicate"):
		return fmt.Errorf("%w: status %d", shared.ErrDuplicateVideo, status)
	default:
		return &APIError{StatusCode: status, Body: truncate(body)}
	}
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
