package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vitlib/biblio-migrate/internal/common"
	"github.com/vitlib/biblio-migrate/internal/model"
)

// SaveRun records the outcome of one ingest run.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.IngestRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if run.RunID == "" {
		return fmt.Errorf("%w: missing run ID", ErrInvalidRun)
	}
	if run.SourcePath == "" {
		return fmt.Errorf("%w: missing source path", ErrInvalidRun)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO ingest_runs (
			run_id, source_path, started_at, finished_at,
			records_read, items_written, no_data, malformed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID,
		run.SourcePath,
		run.StartedAt.Format(time.RFC3339),
		run.FinishedAt.Format(time.RFC3339),
		run.RecordsRead,
		run.ItemsWritten,
		run.NoData,
		run.Malformed,
	)
	if err != nil {
		return fmt.Errorf("failed to save ingest run %s: %w", run.RunID, err)
	}
	return nil
}

// GetRun retrieves one ingest run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, runID string) (*model.IngestRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(runID, "runID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, source_path, started_at, finished_at,
		       records_read, items_written, no_data, malformed
		FROM ingest_runs WHERE run_id = ?
	`, runID)

	var (
		run      model.IngestRun
		started  string
		finished sql.NullString
	)
	err := row.Scan(
		&run.RunID, &run.SourcePath, &started, &finished,
		&run.RecordsRead, &run.ItemsWritten, &run.NoData, &run.Malformed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ingest run %s: %w", runID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingest run %s: %w", runID, err)
	}

	if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
		run.StartedAt = t
	}
	if finished.Valid {
		if t, parseErr := time.Parse(time.RFC3339, finished.String); parseErr == nil {
			run.FinishedAt = t
		}
	}
	return &run, nil
}
