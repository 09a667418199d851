package report

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// patchContext is the number of context lines around each hunk.
const patchContext = 3

// Change is a document before and after the merge.
type Change struct {
	File   string
	Before []byte
	After  []byte
}

// MergedChanges renders unified diffs of every change whose content differs.
// Headers use current/<file> and output/<file>.
func MergedChanges(changes []Change) (*Report, error) {
	r := &Report{
		Name:         MergedChangesFile,
		Title:        "Merged changes patch",
		EmptyMessage: "No values changed.",
		Terminated:   true,
	}

	for _, c := range changes {
		if string(c.Before) == string(c.After) {
			continue
		}
		u := difflib.UnifiedDiff{
			A:        splitLines(c.Before),
			B:        splitLines(c.After),
			FromFile: "current/" + c.File,
			ToFile:   "output/" + c.File,
			Context:  patchContext,
		}
		s, err := difflib.GetUnifiedDiffString(u)
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", c.File, err)
		}
		if s == "" {
			continue
		}
		r.Lines = append(r.Lines, strings.Split(strings.TrimSuffix(s, "\n"), "\n")...)
	}
	return r, nil
}

// splitLines splits a document into newline-terminated lines. A final
// newline does not produce an extra empty line.
func splitLines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(b), "\n")
	if last := lines[len(lines)-1]; last == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n"
	return lines
}
