package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/transmerge/internal/pipeline"
	"github.com/roach88/transmerge/internal/report"
	"github.com/roach88/transmerge/internal/store"
)

// RunSummary is the JSON payload describing a finished run.
type RunSummary struct {
	RunID      string                 `json:"run_id"`
	CurrentDir string                 `json:"current_translations"`
	UpdatedDir string                 `json:"updated_translations"`
	OutputDir  string                 `json:"output"`
	Merged     int                    `json:"merged"`
	Files      []pipeline.FileOutcome `json:"files"`
	Reports    []ReportSummary        `json:"reports"`
	Warnings   []string               `json:"warnings,omitempty"`
	Notices    []string               `json:"notices,omitempty"`
	Failures   []string               `json:"failures,omitempty"`
}

// ReportSummary describes one written report.
type ReportSummary struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Lines int    `json:"lines"`
	Error string `json:"error,omitempty"`
}

func runMerge(opts *MergeOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	if opts.ConfigFile != "" {
		fc, err := LoadConfig(opts.ConfigFile)
		if err != nil {
			return outputCommandError(formatter, err)
		}
		fc.Apply(opts, cmd.Flags())
		logger.Info("config loaded", "path", opts.ConfigFile)
	}

	cfg := pipeline.Config{
		CurrentDir: expandHome(opts.CurrentDir),
		UpdatedDir: expandHome(opts.UpdatedDir),
		OutputDir:  expandHome(opts.OutputDir),
		CheckDiff:  opts.CheckDiff,
		CrossCheck: opts.CrossCheck,
		Patch:      opts.Patch,
	}
	pipeOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	if formatter.Format == "json" {
		pipeOpts = append(pipeOpts,
			pipeline.WithLogf(formatter.VerboseLog),
			pipeline.WithWarnf(formatter.VerboseLog),
		)
	} else {
		pipeOpts = append(pipeOpts,
			pipeline.WithLogf(formatter.Printf),
			pipeline.WithWarnf(formatter.Warnf),
			pipeline.WithReportHook(func(wr pipeline.WrittenReport) {
				printReport(formatter, wr)
			}),
		)
	}
	if opts.IDGenerator != nil {
		pipeOpts = append(pipeOpts, pipeline.WithIDGenerator(opts.IDGenerator))
	}

	if opts.History != "" {
		path := expandHome(opts.History)
		st, err := store.Open(path)
		if err != nil {
			return outputCommandError(formatter, &LoadError{
				Code:    ErrCodeHistory,
				Message: fmt.Sprintf("opening history database %s: %v", path, err),
			})
		}
		defer st.Close()
		pipeOpts = append(pipeOpts, pipeline.WithHistory(st))
		logger.Info("history enabled", "path", path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := pipeline.New(cfg, pipeOpts...).Run(ctx)
	if err != nil {
		return outputCommandError(formatter, err)
	}

	if res.OK() {
		if formatter.Format == "json" {
			return formatter.Success(newRunSummary(cfg, res))
		}
		return nil
	}

	message := fmt.Sprintf("%d file(s) or report(s) could not be written", len(res.Failures))
	_ = formatter.Failure(newRunSummary(cfg, res), ErrCodeWriteFailed, message)
	return NewExitError(ExitFailure, message)
}

// newLogger returns the diagnostics logger. Only warnings and errors are
// shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printReport shows where a report went and what it says. The merged
// changes patch is only echoed in verbose mode.
func printReport(f *OutputFormatter, wr pipeline.WrittenReport) {
	if wr.Err != nil {
		f.Failf("%s could not be saved: %v", wr.Title, wr.Err)
		return
	}
	f.Printf("%s saved to %s", wr.Title, wr.Path)
	switch {
	case wr.Empty():
		if wr.EmptyMessage != "" {
			f.Printf("%s", wr.EmptyMessage)
		}
	case wr.Name == report.MergedChangesFile && !f.Verbose:
	default:
		f.Printf("%s", wr.Text())
	}
}

// outputCommandError prints a fatal error and returns it with exit code 2.
func outputCommandError(f *OutputFormatter, err error) error {
	code, details := errorCode(err)
	_ = f.Error(code, err.Error(), details)
	return WrapExitError(ExitCommandError, code, err)
}

func newRunSummary(cfg pipeline.Config, res *pipeline.Result) RunSummary {
	s := RunSummary{
		RunID:      res.RunID,
		CurrentDir: cfg.CurrentDir,
		UpdatedDir: cfg.UpdatedDir,
		OutputDir:  cfg.OutputDir,
		Merged:     res.Merged(),
		Files:      res.Files,
		Reports:    []ReportSummary{},
		Notices:    res.Notices,
	}
	for _, wr := range res.Reports {
		rs := ReportSummary{Name: wr.Name, Path: wr.Path, Lines: len(wr.Lines)}
		if wr.Err != nil {
			rs.Error = wr.Err.Error()
		}
		s.Reports = append(s.Reports, rs)
	}
	for _, w := range res.Warnings {
		s.Warnings = append(s.Warnings, w.Error())
	}
	for _, err := range res.Failures {
		s.Failures = append(s.Failures, err.Error())
	}
	return s
}
