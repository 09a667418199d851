package pipeline

import (
	"fmt"

	"github.com/roach88/transmerge/internal/report"
)

// Status is the outcome of one current-directory file.
type Status string

const (
	StatusMerged    Status = "merged"
	StatusUnmatched Status = "unmatched"
	StatusFailed    Status = "failed"
)

// FileOutcome describes what happened to one file of the current directory.
type FileOutcome struct {
	Name         string   `json:"name"`
	Locale       string   `json:"locale,omitempty"`
	Status       Status   `json:"status"`
	Path         string   `json:"path,omitempty"`
	Untranslated []string `json:"untranslated,omitempty"`
	Err          error    `json:"-"`
}

// UnmatchedFileWarning reports a current file with no updated counterpart.
// It is a notice: the file is skipped and the run continues.
type UnmatchedFileWarning struct {
	File string
	Dir  string
}

func (w *UnmatchedFileWarning) Error() string {
	return fmt.Sprintf("Updated translations file %s not found in %s.", w.File, w.Dir)
}

// WrittenReport is a report together with where it was written.
// Err is set when writing failed; the report content is still available.
type WrittenReport struct {
	*report.Report
	Path string
	Err  error
}

// Result summarizes a pipeline run.
type Result struct {
	RunID    string
	Files    []FileOutcome
	Reports  []WrittenReport
	Warnings []*UnmatchedFileWarning
	Notices  []string
	Failures []error
}

// OK reports whether every file and report was written.
func (r *Result) OK() bool {
	return len(r.Failures) == 0
}

// Merged returns the number of files merged and written.
func (r *Result) Merged() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == StatusMerged {
			n++
		}
	}
	return n
}

// Report returns the written report with the given artifact name.
func (r *Result) Report(name string) (WrittenReport, bool) {
	for _, wr := range r.Reports {
		if wr.Name == name {
			return wr, true
		}
	}
	return WrittenReport{}, false
}
