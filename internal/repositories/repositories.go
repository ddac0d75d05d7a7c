// package repositories implements SQLite-backed storage for build run
// history, satisfying the generic repository contract in models.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tubelist/internal/models"
	"tubelist/internal/shared"
)

// RunRepository persists playlist build runs.
type RunRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.Run] = (*RunRepository)(nil)

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create stores a run record, assigning it an ID and timestamp.
func (r *RunRepository) Create(run *models.Run) error {
	if run.RunID == "" {
		run.RunID = shared.GenerateID()
	}
	if run.Created.IsZero() {
		run.Created = time.Now().UTC()
	}
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}

	_, err := r.db.Exec(
		`INSERT INTO runs (id, playlist_id, title, privacy, attempted, added, not_found, duplicates, failed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Playlist.ID, run.Playlist.Title, string(run.Playlist.Privacy),
		run.Attempted, run.Added, run.NotFound, run.Duplicates, run.Failed, run.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// Get retrieves one run by ID.
func (r *RunRepository) Get(id string) (*models.Run, error) {
	row := r.db.QueryRow(
		`SELECT id, playlist_id, title, privacy, attempted, added, not_found, duplicates, failed, created_at
		 FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// List returns up to limit runs, newest first. A limit of 0 or less
// returns all runs.
func (r *RunRepository) List(limit int) ([]*models.Run, error) {
	query := `SELECT id, playlist_id, title, privacy, attempted, added, not_found, duplicates, failed, created_at
		 FROM runs ORDER BY created_at DESC`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = r.db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = r.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Delete removes a run record.
func (r *RunRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.Run, error) {
	var run models.Run
	var privacy string
	err := row.Scan(
		&run.RunID, &run.Playlist.ID, &run.Playlist.Title, &privacy,
		&run.Attempted, &run.Added, &run.NotFound, &run.Duplicates, &run.Failed, &run.Created,
	)
	if err != nil {
		return nil, err
	}
	run.Playlist.Privacy = models.Privacy(privacy)
	return &run, nil
}
