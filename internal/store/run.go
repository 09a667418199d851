package store

import "time"

// Run is one pipeline execution as recorded in the ledger.
type Run struct {
	ID           string
	CurrentDir   string
	UpdatedDir   string
	OutputDir    string
	MergedCount  int
	WarningCount int
	FailureCount int
	Files        []FileKeys
	RecordedAt   time.Time
}

// FileKeys holds the untranslated key paths found in one locale file.
type FileKeys struct {
	File string
	Keys []string
}

// KeyOccurrence says that a key was untranslated in a file during a run.
type KeyOccurrence struct {
	RunID string
	File  string
}
