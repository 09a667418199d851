package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Runs returns every recorded run in recording order.
// Files is left empty; use UntranslatedKeys to load them.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, current_dir, updated_dir, output_dir, merged_count, warning_count, failure_count, recorded_at
		FROM runs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Run returns a single run with its untranslated keys.
// Returns sql.ErrNoRows (wrapped) if the run does not exist.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, current_dir, updated_dir, output_dir, merged_count, warning_count, failure_count, recorded_at
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if err != nil {
		return Run{}, err
	}
	run.Files, err = s.UntranslatedKeys(ctx, id)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// UntranslatedKeys returns the untranslated keys of a run grouped by file.
// Files come in name order, keys in the order they were recorded.
func (s *Store) UntranslatedKeys(ctx context.Context, runID string) ([]FileKeys, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file, key_path
		FROM untranslated_keys
		WHERE run_id = ?
		ORDER BY file COLLATE BINARY ASC, position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query untranslated keys: %w", err)
	}
	defer rows.Close()

	files := []FileKeys{}
	for rows.Next() {
		var file, key string
		if err := rows.Scan(&file, &key); err != nil {
			return nil, fmt.Errorf("scan untranslated key: %w", err)
		}
		if n := len(files); n == 0 || files[n-1].File != file {
			files = append(files, FileKeys{File: file})
		}
		last := &files[len(files)-1]
		last.Keys = append(last.Keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate untranslated keys: %w", err)
	}
	return files, nil
}

// KeyHistory returns every run and file in which key was untranslated,
// oldest run first.
func (s *Store) KeyHistory(ctx context.Context, key string) ([]KeyOccurrence, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT k.run_id, k.file
		FROM untranslated_keys k
		JOIN runs r ON r.id = k.run_id
		WHERE k.key_path = ?
		ORDER BY r.seq ASC, k.file COLLATE BINARY ASC
	`, key)
	if err != nil {
		return nil, fmt.Errorf("query key history: %w", err)
	}
	defer rows.Close()

	out := []KeyOccurrence{}
	for rows.Next() {
		var occ KeyOccurrence
		if err := rows.Scan(&occ.RunID, &occ.File); err != nil {
			return nil, fmt.Errorf("scan key history: %w", err)
		}
		out = append(out, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate key history: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run        Run
		recordedAt string
	)
	err := row.Scan(
		&run.ID,
		&run.CurrentDir,
		&run.UpdatedDir,
		&run.OutputDir,
		&run.MergedCount,
		&run.WarningCount,
		&run.FailureCount,
		&recordedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run not found: %w", err)
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
	}
	return run, nil
}
