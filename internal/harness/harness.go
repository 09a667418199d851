package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/transmerge/internal/pipeline"
	"github.com/roach88/transmerge/internal/store"
)

// Harness runs one scenario inside a scratch directory.
type Harness struct {
	dir    string
	store  *store.Store
	result *Result
}

// Run executes a scenario in dir, which must exist and be empty, and
// evaluates its assertions.
//
// Execution flow:
//  1. Write current, updated and pre-existing output files under dir
//  2. Open a fresh in-memory history store if the scenario asks for one
//  3. Run the pipeline with a fixed run ID, tracing every log line
//  4. Snapshot the output folder
//  5. Evaluate assertions
//
// An error is returned only when the scenario could not be set up; a run
// that aborts is recorded in Result.RunErr.
func Run(scenario *Scenario, dir string) (*Result, error) {
	h := &Harness{dir: dir, result: NewResult()}

	cfg := pipeline.Config{
		CurrentDir: filepath.Join(dir, "current"),
		UpdatedDir: filepath.Join(dir, "updated"),
		OutputDir:  filepath.Join(dir, "output"),
		CheckDiff:  scenario.Options.CheckDiff,
		CrossCheck: scenario.Options.CrossCheck,
		Patch:      scenario.Options.Patch,
	}
	if err := writeFiles(cfg.CurrentDir, scenario.Current); err != nil {
		return nil, err
	}
	if err := writeFiles(cfg.UpdatedDir, scenario.Updated); err != nil {
		return nil, err
	}
	if len(scenario.Output) > 0 {
		if err := writeFiles(cfg.OutputDir, scenario.Output); err != nil {
			return nil, err
		}
	}

	runID := scenario.RunID
	if runID == "" {
		runID = DefaultRunID
	}
	opts := []pipeline.Option{
		pipeline.WithIDGenerator(pipeline.NewFixedGenerator(runID)),
		pipeline.WithLogf(h.tracef("log")),
		pipeline.WithWarnf(h.tracef("warn")),
		pipeline.WithReportHook(func(wr pipeline.WrittenReport) {
			if wr.Err != nil {
				h.trace("report", fmt.Sprintf("%s failed: %v", wr.Name, wr.Err))
				return
			}
			h.trace("report", fmt.Sprintf("%s (%d lines)", wr.Name, len(wr.Lines)))
		}),
	}

	if scenario.Options.History {
		st, err := store.Open(":memory:")
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		defer st.Close()
		h.store = st
		opts = append(opts, pipeline.WithHistory(st))
	}

	ctx := context.Background()
	res, err := pipeline.New(cfg, opts...).Run(ctx)
	h.result.Run = res
	h.result.RunErr = err
	if err != nil {
		h.result.RunErrText = h.relative(err.Error())
	}

	if err := h.snapshotOutput(cfg.OutputDir); err != nil {
		return nil, err
	}

	actx := &AssertionContext{Store: h.store, Ctx: ctx, RunID: runID}
	for _, msg := range EvaluateAssertions(h.result, scenario.Assertions, actx) {
		h.result.AddError(msg)
	}
	if err != nil && !expectsRunError(scenario.Assertions) {
		h.result.AddError("run aborted: " + h.result.RunErrText)
	}

	return h.result, nil
}

func (h *Harness) tracef(kind string) func(string, ...any) {
	return func(format string, args ...any) {
		h.trace(kind, fmt.Sprintf(format, args...))
	}
}

func (h *Harness) trace(kind, message string) {
	h.result.AddTrace(kind, h.relative(message))
}

// relative strips the scenario directory from paths in s.
func (h *Harness) relative(s string) string {
	return strings.ReplaceAll(s, h.dir+string(filepath.Separator), "")
}

// snapshotOutput reads every regular file in the output folder.
// A missing output folder leaves the snapshot empty.
func (h *Harness) snapshotOutput(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read output folder: %w", err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("failed to read output file: %w", err)
		}
		h.result.Output[e.Name()] = string(data)
	}
	return nil
}

func writeFiles(dir string, files map[string]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

func expectsRunError(assertions []Assertion) bool {
	for _, a := range assertions {
		if a.Type == AssertRunError {
			return true
		}
	}
	return false
}
