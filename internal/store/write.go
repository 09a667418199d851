package store

import (
	"context"
	"fmt"
	"time"
)

// RecordRun inserts a run and its untranslated keys in one transaction.
// Uses ON CONFLICT DO NOTHING for idempotency - recording the same run ID
// twice leaves the first record untouched.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("record run: empty run ID")
	}
	recordedAt := run.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run %s: begin: %w", run.ID, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, current_dir, updated_dir, output_dir, merged_count, warning_count, failure_count, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.CurrentDir,
		run.UpdatedDir,
		run.OutputDir,
		run.MergedCount,
		run.WarningCount,
		run.FailureCount,
		recordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return tx.Commit()
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO untranslated_keys (run_id, file, position, key_path)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id, file, key_path) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("record run %s: prepare keys: %w", run.ID, err)
	}
	defer stmt.Close()

	for _, fk := range run.Files {
		for i, key := range fk.Keys {
			if _, err := stmt.ExecContext(ctx, run.ID, fk.File, i, key); err != nil {
				return fmt.Errorf("record run %s: key %s in %s: %w", run.ID, key, fk.File, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record run %s: commit: %w", run.ID, err)
	}
	return nil
}
