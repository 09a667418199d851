// Package report renders reconciliation results as plain-text artifacts.
//
// Builders are pure: they turn results into a *Report holding ordered lines.
// Writing the report to disk is the caller's job.
package report

import (
	"fmt"
	"strings"

	"github.com/roach88/transmerge/internal/reconcile"
)

// Fixed artifact names inside the output directory.
const (
	MissingKeysFile         = "missing_keys_report.txt"
	UntranslatedFile        = "untranslated_keys_report.txt"
	GroupedUntranslatedFile = "grouped_untranslated_keys_report.txt"
	ConsolidatedFile        = "consolidated_missing_keys_report.txt"
	MergedChangesFile       = "merged_changes.patch"
)

// Report is a named, ordered sequence of text lines.
type Report struct {
	Name  string   // artifact file name
	Title string   // human label, e.g. "Untranslated keys report"
	Lines []string

	// EmptyMessage is shown instead of the content when there are no lines.
	EmptyMessage string

	// Terminated adds a final newline to Bytes. Text reports have none.
	Terminated bool
}

// Empty reports whether the report has no lines.
func (r *Report) Empty() bool {
	return len(r.Lines) == 0
}

// Text joins the lines with newlines.
func (r *Report) Text() string {
	return strings.Join(r.Lines, "\n")
}

// Bytes returns the artifact content.
func (r *Report) Bytes() []byte {
	s := r.Text()
	if r.Terminated && s != "" {
		s += "\n"
	}
	return []byte(s)
}

// FileKeys is a file with a list of key paths.
type FileKeys struct {
	File string
	Keys []string
}

// FileLines is a file with preformatted lines.
type FileLines struct {
	File  string
	Lines []string
}

// Untranslated lists, per file, the keys the updated snapshot lacks.
// Files with no such keys should be left out of entries.
func Untranslated(entries []FileKeys) *Report {
	r := &Report{
		Name:         UntranslatedFile,
		Title:        "Untranslated keys report",
		EmptyMessage: "No untranslated keys found.",
	}
	for _, e := range entries {
		r.Lines = append(r.Lines, fmt.Sprintf("File: %s is missing translations for the following keys:", e.File), "")
		r.Lines = append(r.Lines, e.Keys...)
	}
	return r
}

// GroupedUntranslated lists each untranslated key once with every file it
// is untranslated in.
func GroupedUntranslated(entries []reconcile.GroupEntry) *Report {
	r := &Report{
		Name:         GroupedUntranslatedFile,
		Title:        "Grouped untranslated keys report",
		EmptyMessage: "No untranslated keys found.",
	}
	for _, e := range entries {
		r.Lines = append(r.Lines, fmt.Sprintf("%s (has not been translated in: %s)", e.Key, strings.Join(e.Files, ", ")))
	}
	return r
}

// MissingKeys lists, per file, the lines produced by tree.MissingKeys when
// comparing the current document against its merged output.
// Files with no missing keys should be left out of entries.
func MissingKeys(entries []FileLines) *Report {
	r := &Report{
		Name:         MissingKeysFile,
		Title:        "Missing keys report",
		EmptyMessage: "No missing keys found.",
	}
	for _, e := range entries {
		r.Lines = append(r.Lines, "File: "+e.File)
		r.Lines = append(r.Lines, e.Lines...)
	}
	return r
}

// Consolidated lists, per file, the keys its siblings have and it lacks.
func Consolidated(gaps []reconcile.Gap) *Report {
	r := &Report{
		Name:         ConsolidatedFile,
		Title:        "Consolidated missing keys report",
		EmptyMessage: "No missing keys found between files.",
	}
	for _, gap := range gaps {
		r.Lines = append(r.Lines, fmt.Sprintf("File: %s is missing the following keys:", gap.File), "")
		for _, mk := range gap.Missing {
			r.Lines = append(r.Lines, fmt.Sprintf("%s (Present in: %s)", mk.Key, strings.Join(mk.PresentIn, ", ")))
		}
		r.Lines = append(r.Lines, "")
	}
	return r
}
