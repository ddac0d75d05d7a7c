package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tubelist/internal/links"
	"tubelist/internal/models"
	"tubelist/internal/shared"
	tu "tubelist/internal/testing"
)

func writeLinkFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "links.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		t.Fatalf("failed to write link file: %v", err)
	}
	return path
}

func newTestRunner(t *testing.T, youtube *tu.MockPlaylistService) (*Runner, *bytes.Buffer) {
	t.Helper()
	output := &bytes.Buffer{}

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "tubelist.db")

	runner := NewRunner(RunnerOpts{
		Config:  config,
		YouTube: youtube,
		Logger:  shared.NewLogger(nil),
		Output:  output,
	})
	return runner, output
}

func TestNewRunner(t *testing.T) {
	t.Run("with all dependencies provided", func(t *testing.T) {
		config := shared.DefaultConfig()
		logger := shared.NewLogger(nil)
		output := &bytes.Buffer{}
		youtube := &tu.MockPlaylistService{}

		runner := NewRunner(RunnerOpts{
			Config:  config,
			YouTube: youtube,
			Logger:  logger,
			Output:  output,
		})

		if runner.config != config {
			t.Error("expected config to be set")
		}
		if runner.logger != logger {
			t.Error("expected logger to be set")
		}
		if runner.output != output {
			t.Error("expected output to be set")
		}
		if runner.youtube != youtube {
			t.Error("expected youtube to be set")
		}
	})

	t.Run("with nil config uses defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.config == nil {
			t.Error("expected default config to be set")
		}
		if runner.output != os.Stdout {
			t.Error("expected output to default to os.Stdout")
		}
		if runner.logger == nil {
			t.Error("expected default logger to be set")
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("writeJSON", func(t *testing.T) {
		runner, output := newTestRunner(t, nil)

		if err := runner.writeJSON(map[string]int{"added": 3}, false); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if got := output.String(); got != "{\"added\":3}\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("writeJSON pretty", func(t *testing.T) {
		runner, output := newTestRunner(t, nil)

		if err := runner.writeJSON(map[string]int{"added": 3}, true); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if !strings.Contains(output.String(), "  \"added\": 3") {
			t.Errorf("output = %q", output.String())
		}
	})

	t.Run("write failures surface", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := runner.writeJSON("x", false); err == nil {
			t.Error("expected write error")
		}
		if err := runner.writePlain("x"); err == nil {
			t.Error("expected write error")
		}
	})
}

func TestParseCommand(t *testing.T) {
	t.Run("prints extracted ids", func(t *testing.T) {
		path := writeLinkFile(t,
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"garbage line",
			"https://youtu.be/abc12345678",
		)

		runner, output := newTestRunner(t, nil)
		cmd := parseCommand(runner)

		if err := cmd.Run(context.Background(), []string{"parse", path}); err != nil {
			t.Fatalf("parse failed: %v", err)
		}

		got := output.String()
		if !strings.Contains(got, "dQw4w9WgXcQ") || !strings.Contains(got, "abc12345678") {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("file with no links reports ErrNoInput", func(t *testing.T) {
		path := writeLinkFile(t, "nothing here", "")

		runner, _ := newTestRunner(t, nil)
		cmd := parseCommand(runner)

		err := cmd.Run(context.Background(), []string{"parse", path})
		if !errors.Is(err, shared.ErrNoInput) {
			t.Errorf("expected ErrNoInput, got %v", err)
		}
	})
}

func TestBuildCommand(t *testing.T) {
	t.Run("builds a playlist from the link file", func(t *testing.T) {
		path := writeLinkFile(t,
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"https://youtu.be/abc12345678",
		)

		mock := &tu.MockPlaylistService{}
		runner, output := newTestRunner(t, mock)
		cmd := buildCommand(runner)

		err := cmd.Run(context.Background(), []string{"build", "--title", "Road Trip", path})
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}

		if mock.CreateCalls != 1 {
			t.Errorf("create calls = %d", mock.CreateCalls)
		}
		if len(mock.AddCalls) != 2 {
			t.Errorf("add calls = %v", mock.AddCalls)
		}

		got := output.String()
		if !strings.Contains(got, "Added 2 out of 2 videos.") {
			t.Errorf("output missing summary: %q", got)
		}
		if !strings.Contains(got, "https://www.youtube.com/playlist?list=PLmock") {
			t.Errorf("output missing playlist URL: %q", got)
		}
	})

	t.Run("reports skip counts", func(t *testing.T) {
		path := writeLinkFile(t,
			"https://youtu.be/AAAAAAAAAAA",
			"https://youtu.be/GONEGONEGON",
			"https://youtu.be/DUPLICATEXX",
		)

		mock := &tu.MockPlaylistService{
			AddFunc: func(ctx context.Context, playlistID string, videoID links.VideoID) error {
				switch videoID {
				case "GONEGONEGON":
					return fmt.Errorf("%w", shared.ErrVideoNotFound)
				case "DUPLICATEXX":
					return fmt.Errorf("%w", shared.ErrDuplicateVideo)
				}
				return nil
			},
		}
		runner, output := newTestRunner(t, mock)
		cmd := buildCommand(runner)

		if err := cmd.Run(context.Background(), []string{"build", path}); err != nil {
			t.Fatalf("build failed: %v", err)
		}

		got := output.String()
		if !strings.Contains(got, "Added 1 out of 3 videos.") {
			t.Errorf("output missing summary: %q", got)
		}
		if !strings.Contains(got, "Not found or private: 1") {
			t.Errorf("output missing not-found count: %q", got)
		}
		if !strings.Contains(got, "Already in playlist: 1") {
			t.Errorf("output missing duplicate count: %q", got)
		}
	})

	t.Run("dry run never touches the service", func(t *testing.T) {
		path := writeLinkFile(t, "https://youtu.be/AAAAAAAAAAA")

		mock := &tu.MockPlaylistService{}
		runner, output := newTestRunner(t, mock)
		cmd := buildCommand(runner)

		if err := cmd.Run(context.Background(), []string{"build", "--dry-run", path}); err != nil {
			t.Fatalf("build failed: %v", err)
		}

		if mock.CreateCalls != 0 || len(mock.AddCalls) != 0 {
			t.Error("expected no API calls during dry run")
		}
		if !strings.Contains(output.String(), "AAAAAAAAAAA") {
			t.Errorf("output = %q", output.String())
		}
	})

	t.Run("invalid privacy flag fails before the API", func(t *testing.T) {
		path := writeLinkFile(t, "https://youtu.be/AAAAAAAAAAA")

		mock := &tu.MockPlaylistService{}
		runner, _ := newTestRunner(t, mock)
		cmd := buildCommand(runner)

		err := cmd.Run(context.Background(), []string{"build", "--privacy", "secret", path})
		if err == nil {
			t.Fatal("expected error for invalid privacy")
		}
		if mock.CreateCalls != 0 {
			t.Error("expected no create call")
		}
	})

	t.Run("create failure aborts with an error", func(t *testing.T) {
		path := writeLinkFile(t, "https://youtu.be/AAAAAAAAAAA")

		mock := &tu.MockPlaylistService{
			CreateFunc: func(ctx context.Context, title, description string, privacy models.Privacy) (*models.Playlist, error) {
				return nil, errors.New("quota exceeded")
			},
		}
		runner, _ := newTestRunner(t, mock)
		cmd := buildCommand(runner)

		if err := cmd.Run(context.Background(), []string{"build", path}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("json flag emits the result", func(t *testing.T) {
		path := writeLinkFile(t, "https://youtu.be/AAAAAAAAAAA")

		runner, output := newTestRunner(t, &tu.MockPlaylistService{})
		cmd := buildCommand(runner)

		if err := cmd.Run(context.Background(), []string{"build", "--json", path}); err != nil {
			t.Fatalf("build failed: %v", err)
		}
		if !strings.Contains(output.String(), "\"Added\": 1") {
			t.Errorf("output = %q", output.String())
		}
	})
}
