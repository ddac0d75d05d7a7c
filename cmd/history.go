package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/urfave/cli/v3"

	"tubelist/internal/formatter"
	"tubelist/internal/models"
	"tubelist/internal/repositories"
	"tubelist/internal/shared"
)

// withHistoryDB opens the run-history database, applies migrations and hands
// the connection to fn.
func (r *Runner) withHistoryDB(fn func(*sql.DB) error) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to migrate history database: %w", err)
	}

	return fn(db)
}

// HistoryList prints recent builds, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	return r.withHistoryDB(func(db *sql.DB) error {
		runs, err := repositories.NewRunRepository(db).List(cmd.Int("limit"))
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			return r.writeJSON(runs, true)
		}

		if len(runs) == 0 {
			return r.writePlain("No builds recorded yet.\n")
		}

		for _, run := range runs {
			r.writePlain("%s  %-30q  added %d/%d  %s\n",
				run.Created.Format("2006-01-02 15:04"),
				run.Playlist.Title,
				run.Added, run.Attempted,
				run.Playlist.URL())
		}
		return nil
	})
}

// HistoryExport writes build history to a file in the requested format.
func (r *Runner) HistoryExport(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	return r.withHistoryDB(func(db *sql.DB) error {
		runs, err := repositories.NewRunRepository(db).List(0)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			runs = []*models.Run{}
		}

		path, err := formatter.WriteExport(runs, cmd.String("format"), cmd.String("output"))
		if err != nil {
			return err
		}

		r.logger.Info("history exported", "path", path, "runs", len(runs))
		return r.writePlain("Exported %d runs to %s\n", len(runs), path)
	})
}
