// Package pipeline merges two directories of locale files and writes the
// merged documents and reports to an output directory.
//
// Each file is fully read, merged and written before the next one is
// considered. All passes it composes (tree, reconcile, report) are pure;
// the pipeline owns every filesystem access.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/transmerge/internal/locale"
	"github.com/roach88/transmerge/internal/reconcile"
	"github.com/roach88/transmerge/internal/report"
	"github.com/roach88/transmerge/internal/store"
	"github.com/roach88/transmerge/internal/tree"
)

// Config selects the directories and optional passes of a run.
type Config struct {
	CurrentDir string
	UpdatedDir string
	OutputDir  string

	CheckDiff  bool // compare current documents against merged output
	CrossCheck bool // reconcile keys across merged output files
	Patch      bool // write merged_changes.patch
}

// History records finished runs.
type History interface {
	RecordRun(ctx context.Context, run store.Run) error
}

// Pipeline runs one merge over a Config.
type Pipeline struct {
	cfg      Config
	logf     func(format string, args ...any)
	warnf    func(format string, args ...any)
	logger   *slog.Logger
	history  History
	ids      IDGenerator
	now      func() time.Time
	onReport func(WrittenReport)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogf sets the progress logger. Defaults to discarding.
func WithLogf(fn func(format string, args ...any)) Option {
	return func(p *Pipeline) {
		p.logf = fn
	}
}

// WithWarnf sets the logger for unmatched files and failures.
// Defaults to discarding.
func WithWarnf(fn func(format string, args ...any)) Option {
	return func(p *Pipeline) {
		p.warnf = fn
	}
}

// WithLogger sets the structured logger for diagnostics. Console lines
// still go through the Logf and Warnf hooks. Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithReportHook calls fn after each report is written or fails to write.
func WithReportHook(fn func(WrittenReport)) Option {
	return func(p *Pipeline) {
		p.onReport = fn
	}
}

// WithHistory records every run into h once all passes are done.
func WithHistory(h History) Option {
	return func(p *Pipeline) {
		p.history = h
	}
}

// WithIDGenerator overrides the run ID source (default UUIDv7Generator).
func WithIDGenerator(g IDGenerator) Option {
	return func(p *Pipeline) {
		p.ids = g
	}
}

// WithClock sets the source of the recorded run time (default time.Now).
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New creates a Pipeline for cfg.
func New(cfg Config, opts ...Option) *Pipeline {
	discard := func(string, ...any) {}
	p := &Pipeline{
		cfg:      cfg,
		logf:     discard,
		warnf:    discard,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:      UUIDv7Generator{},
		now:      time.Now,
		onReport: func(WrittenReport) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the merge and every enabled pass.
//
// A missing input directory, an output directory that cannot be created
// and a malformed document abort the run with an error. Failures to read
// or write a single file or report are collected in Result.Failures and
// the run continues.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := locale.CheckDir(p.cfg.CurrentDir); err != nil {
		return nil, err
	}
	if err := locale.CheckDir(p.cfg.UpdatedDir); err != nil {
		return nil, err
	}
	if err := locale.EnsureDir(p.cfg.OutputDir); err != nil {
		return nil, err
	}

	names, err := locale.List(p.cfg.CurrentDir)
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: p.ids.Generate()}
	log := p.logger.With("run_id", res.RunID)
	log.Info("run starting",
		"current", p.cfg.CurrentDir,
		"updated", p.cfg.UpdatedDir,
		"output", p.cfg.OutputDir,
		"files", len(names),
	)
	var (
		grouping     reconcile.Grouping
		untranslated []report.FileKeys
		changes      []report.Change
	)

	for _, name := range names {
		outcome, change, err := p.mergeFile(name)
		if err != nil {
			log.Error("run aborted", "file", name, "error", err)
			return nil, err
		}
		log.Debug("file processed",
			"file", name,
			"status", outcome.Status,
			"untranslated", len(outcome.Untranslated),
		)
		res.Files = append(res.Files, outcome)

		switch outcome.Status {
		case StatusUnmatched:
			w := &UnmatchedFileWarning{File: name, Dir: p.cfg.UpdatedDir}
			res.Warnings = append(res.Warnings, w)
			p.warnf("%s", w.Error())
			continue
		case StatusFailed:
			res.Failures = append(res.Failures, outcome.Err)
			p.warnf("%s: %v", name, outcome.Err)
		case StatusMerged:
			p.logf("Merged %s and saved to %s.", name, outcome.Path)
			if change != nil {
				changes = append(changes, *change)
			}
		}

		if len(outcome.Untranslated) > 0 {
			grouping.Add(name, tree.NewKeySet(outcome.Untranslated...))
			untranslated = append(untranslated, report.FileKeys{File: name, Keys: outcome.Untranslated})
		}
	}

	p.write(res, report.Untranslated(untranslated))
	p.write(res, report.GroupedUntranslated(grouping.Entries()))

	if p.cfg.CheckDiff {
		r, err := p.checkDiff()
		if err != nil {
			return nil, err
		}
		p.write(res, r)
	}

	if p.cfg.CrossCheck {
		files, err := locale.LoadDir(p.cfg.OutputDir)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			notice := "No translation files found in the output folder."
			res.Notices = append(res.Notices, notice)
			p.logf("%s", notice)
		} else {
			p.write(res, report.Consolidated(reconcile.Consolidate(files)))
		}
	}

	if p.cfg.Patch {
		r, err := report.MergedChanges(changes)
		if err != nil {
			res.Failures = append(res.Failures, err)
			p.warnf("%v", err)
		} else {
			p.write(res, r)
		}
	}

	if p.history != nil {
		if err := p.history.RecordRun(ctx, p.runRecord(res)); err != nil {
			err = fmt.Errorf("record run history: %w", err)
			res.Failures = append(res.Failures, err)
			p.warnf("%v", err)
		} else {
			log.Debug("run recorded")
		}
	}

	log.Info("run finished",
		"merged", res.Merged(),
		"warnings", len(res.Warnings),
		"failures", len(res.Failures),
	)
	return res, nil
}

// mergeFile merges one current file with its updated counterpart.
// Only a parse error is returned as an error; everything else ends up in
// the outcome.
func (p *Pipeline) mergeFile(name string) (FileOutcome, *report.Change, error) {
	outcome := FileOutcome{Name: name}

	if !exists(filepath.Join(p.cfg.UpdatedDir, name)) {
		outcome.Status = StatusUnmatched
		return outcome, nil, nil
	}

	fail := func(err error) (FileOutcome, *report.Change, error) {
		var perr *tree.ParseError
		if errors.As(err, &perr) {
			return outcome, nil, err
		}
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome, nil, nil
	}

	current, err := locale.Load(p.cfg.CurrentDir, name)
	if err != nil {
		return fail(err)
	}
	outcome.Locale = current.Locale()

	updated, err := locale.Load(p.cfg.UpdatedDir, name)
	if err != nil {
		return fail(err)
	}

	// Computed before Merge, which rewrites current in place.
	outcome.Untranslated = reconcile.Untranslated(current.Tree, updated.Tree).Paths()

	var before []byte
	if p.cfg.Patch {
		before, err = tree.Marshal(current.Format, current.Tree)
		if err != nil {
			return fail(err)
		}
	}

	tree.Merge(current.Tree, updated.Tree)

	var change *report.Change
	if p.cfg.Patch {
		after, err := tree.Marshal(current.Format, current.Tree)
		if err != nil {
			return fail(err)
		}
		change = &report.Change{File: name, Before: before, After: after}
	}

	path, err := locale.Write(p.cfg.OutputDir, current)
	if err != nil {
		return fail(err)
	}
	outcome.Status = StatusMerged
	outcome.Path = path
	return outcome, change, nil
}

// checkDiff compares every output document that has a current counterpart
// against that counterpart.
func (p *Pipeline) checkDiff() (*report.Report, error) {
	names, err := locale.List(p.cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	var entries []report.FileLines
	for _, name := range names {
		if !exists(filepath.Join(p.cfg.CurrentDir, name)) {
			continue
		}
		current, err := locale.Load(p.cfg.CurrentDir, name)
		if err != nil {
			return nil, err
		}
		output, err := locale.Load(p.cfg.OutputDir, name)
		if err != nil {
			return nil, err
		}
		if lines := tree.MissingKeys(current.Tree, output.Tree, ""); len(lines) > 0 {
			entries = append(entries, report.FileLines{File: name, Lines: lines})
		}
	}
	return report.MissingKeys(entries), nil
}

// write stores r in the output directory and records the outcome.
func (p *Pipeline) write(res *Result, r *report.Report) {
	wr := WrittenReport{Report: r, Path: filepath.Join(p.cfg.OutputDir, r.Name)}
	if err := locale.WriteFileAtomic(wr.Path, r.Bytes()); err != nil {
		wr.Err = err
		res.Failures = append(res.Failures, err)
		p.logger.Warn("report not written", "run_id", res.RunID, "report", r.Name, "error", err)
	} else {
		p.logger.Debug("report written", "run_id", res.RunID, "report", r.Name, "lines", len(r.Lines))
	}
	res.Reports = append(res.Reports, wr)
	p.onReport(wr)
}

func (p *Pipeline) runRecord(res *Result) store.Run {
	run := store.Run{
		ID:           res.RunID,
		CurrentDir:   p.cfg.CurrentDir,
		UpdatedDir:   p.cfg.UpdatedDir,
		OutputDir:    p.cfg.OutputDir,
		MergedCount:  res.Merged(),
		WarningCount: len(res.Warnings),
		FailureCount: len(res.Failures),
		RecordedAt:   p.now(),
	}
	for _, f := range res.Files {
		if len(f.Untranslated) > 0 {
			run.Files = append(run.Files, store.FileKeys{File: f.Name, Keys: f.Untranslated})
		}
	}
	return run
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
