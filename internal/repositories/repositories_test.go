package repositories

import (
	"testing"
	"time"

	"tubelist/internal/models"
	"tubelist/internal/shared"
)

func newTestRepo(t *testing.T) *RunRepository {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return NewRunRepository(db)
}

func testRun(title string) *models.Run {
	return &models.Run{
		Playlist: models.Playlist{
			ID:      "PL" + title,
			Title:   title,
			Privacy: models.PrivacyUnlisted,
		},
		Attempted:  5,
		Added:      3,
		NotFound:   1,
		Duplicates: 1,
	}
}

func TestRunRepository(t *testing.T) {
	t.Run("Create assigns id and timestamp", func(t *testing.T) {
		repo := newTestRepo(t)

		run := testRun("one")
		if err := repo.Create(run); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if run.RunID == "" {
			t.Error("expected run id to be assigned")
		}
		if run.Created.IsZero() {
			t.Error("expected created timestamp to be assigned")
		}
	})

	t.Run("Create rejects inconsistent counts", func(t *testing.T) {
		repo := newTestRepo(t)

		run := testRun("bad")
		run.Added = 10 // exceeds attempted
		if err := repo.Create(run); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("Get returns the stored run", func(t *testing.T) {
		repo := newTestRepo(t)

		run := testRun("one")
		if err := repo.Create(run); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		got, err := repo.Get(run.RunID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Playlist.Title != "one" || got.Playlist.Privacy != models.PrivacyUnlisted {
			t.Errorf("unexpected run: %+v", got)
		}
		if got.Attempted != 5 || got.Added != 3 || got.NotFound != 1 || got.Duplicates != 1 {
			t.Errorf("unexpected counts: %+v", got)
		}
	})

	t.Run("Get for unknown id fails", func(t *testing.T) {
		repo := newTestRepo(t)
		if _, err := repo.Get("nope"); err == nil {
			t.Error("expected error for unknown run")
		}
	})

	t.Run("List returns newest first and honors the limit", func(t *testing.T) {
		repo := newTestRepo(t)

		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		for i, title := range []string{"oldest", "middle", "newest"} {
			run := testRun(title)
			run.RunID = shared.GenerateID()
			run.Created = base.Add(time.Duration(i) * time.Hour)
			if err := repo.Create(run); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
		}

		runs, err := repo.List(0)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}
		if runs[0].Playlist.Title != "newest" || runs[2].Playlist.Title != "oldest" {
			t.Errorf("unexpected order: %s, %s, %s",
				runs[0].Playlist.Title, runs[1].Playlist.Title, runs[2].Playlist.Title)
		}

		limited, err := repo.List(2)
		if err != nil {
			t.Fatalf("List with limit failed: %v", err)
		}
		if len(limited) != 2 || limited[0].Playlist.Title != "newest" {
			t.Errorf("unexpected limited result: %v", limited)
		}
	})

	t.Run("Delete removes the run", func(t *testing.T) {
		repo := newTestRepo(t)

		run := testRun("one")
		if err := repo.Create(run); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if err := repo.Delete(run.RunID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := repo.Get(run.RunID); err == nil {
			t.Error("expected run to be gone")
		}
		if err := repo.Delete(run.RunID); err == nil {
			t.Error("expected error deleting twice")
		}
	})
}
