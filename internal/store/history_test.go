package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(id string) Run {
	return Run{
		ID:           id,
		CurrentDir:   "/tr/current",
		UpdatedDir:   "/tr/updated",
		OutputDir:    "/tr/output",
		MergedCount:  2,
		WarningCount: 1,
		Files: []FileKeys{
			{File: "fr.json", Keys: []string{"menu.close", "title"}},
			{File: "de.json", Keys: []string{"title"}},
		},
		RecordedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecordRun_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	require.NoError(t, s.RecordRun(ctx, sampleRun("run-1")))

	got, err := s.Run(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, "/tr/current", got.CurrentDir)
	assert.Equal(t, "/tr/updated", got.UpdatedDir)
	assert.Equal(t, "/tr/output", got.OutputDir)
	assert.Equal(t, 2, got.MergedCount)
	assert.Equal(t, 1, got.WarningCount)
	assert.Equal(t, 0, got.FailureCount)
	assert.True(t, got.RecordedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))

	// Files come back in name order, keys in recorded order.
	assert.Equal(t, []FileKeys{
		{File: "de.json", Keys: []string{"title"}},
		{File: "fr.json", Keys: []string{"menu.close", "title"}},
	}, got.Files)
}

func TestRecordRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	first := sampleRun("run-1")
	require.NoError(t, s.RecordRun(ctx, first))

	second := sampleRun("run-1")
	second.MergedCount = 99
	second.Files = []FileKeys{{File: "es.json", Keys: []string{"other"}}}
	require.NoError(t, s.RecordRun(ctx, second))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].MergedCount)

	files, err := s.UntranslatedKeys(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestRecordRun_EmptyID(t *testing.T) {
	s, _ := openTemp(t)
	err := s.RecordRun(context.Background(), Run{})
	assert.Error(t, err)
}

func TestRecordRun_DefaultsRecordedAt(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	before := time.Now().Add(-time.Second)
	require.NoError(t, s.RecordRun(ctx, Run{ID: "run-1"}))

	got, err := s.Run(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, got.RecordedAt.After(before), "recorded_at %v not after %v", got.RecordedAt, before)
	assert.Empty(t, got.Files)
}

func TestRuns_RecordingOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	// Wall-clock times deliberately reversed; listing follows insertion.
	later := sampleRun("run-b")
	later.RecordedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	earlier := sampleRun("run-a")
	earlier.RecordedAt = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordRun(ctx, later))
	require.NoError(t, s.RecordRun(ctx, earlier))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-b", runs[0].ID)
	assert.Equal(t, "run-a", runs[1].ID)
}

func TestRuns_Empty(t *testing.T) {
	s, _ := openTemp(t)
	runs, err := s.Runs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestRun_NotFound(t *testing.T) {
	s, _ := openTemp(t)
	_, err := s.Run(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestKeyHistory(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	require.NoError(t, s.RecordRun(ctx, sampleRun("run-1")))
	second := sampleRun("run-2")
	second.Files = []FileKeys{{File: "fr.json", Keys: []string{"footer"}}}
	require.NoError(t, s.RecordRun(ctx, second))

	occ, err := s.KeyHistory(ctx, "title")
	require.NoError(t, err)
	assert.Equal(t, []KeyOccurrence{
		{RunID: "run-1", File: "de.json"},
		{RunID: "run-1", File: "fr.json"},
	}, occ)

	occ, err = s.KeyHistory(ctx, "footer")
	require.NoError(t, err)
	assert.Equal(t, []KeyOccurrence{{RunID: "run-2", File: "fr.json"}}, occ)

	occ, err = s.KeyHistory(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, occ)
}
