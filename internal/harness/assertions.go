package harness

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/transmerge/internal/locale"
	"github.com/roach88/transmerge/internal/store"
	"github.com/roach88/transmerge/internal/tree"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("Assertion failed: %s\n  Expected: %s\n  Actual: %s\n", e.Type, e.Expected, e.Actual)
}

// AssertionContext carries what assertions need beyond the result.
type AssertionContext struct {
	Store *store.Store // nil unless the scenario enables history
	Ctx   context.Context
	RunID string
}

// EvaluateAssertions runs every assertion and returns failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(result, a, actx); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

func evaluate(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertFileEquals:
		return assertFileEquals(result, a)
	case AssertFileContains:
		return assertFileContains(result, a)
	case AssertFileAbsent:
		return assertFileAbsent(result, a)
	case AssertWarningCount:
		return assertWarningCount(result, a)
	case AssertUntranslated:
		return assertUntranslated(result, a)
	case AssertHistoryKeys:
		return assertHistoryKeys(a, actx)
	case AssertRunError:
		return assertRunError(result, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertFileEquals(result *Result, a Assertion) error {
	got, ok := result.Output[a.File]
	if !ok {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%s written", a.File), Actual: "file missing"}
	}
	if got != a.Content {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%q", a.Content), Actual: fmt.Sprintf("%q", got)}
	}
	return nil
}

func assertFileContains(result *Result, a Assertion) error {
	got, ok := result.Output[a.File]
	if !ok {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%s written", a.File), Actual: "file missing"}
	}
	if !strings.Contains(got, a.Content) {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%s contains %q", a.File, a.Content), Actual: fmt.Sprintf("%q", got)}
	}
	return nil
}

func assertFileAbsent(result *Result, a Assertion) error {
	if _, ok := result.Output[a.File]; ok {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%s not written", a.File), Actual: "file present"}
	}
	return nil
}

func assertWarningCount(result *Result, a Assertion) error {
	got := 0
	if result.Run != nil {
		got = len(result.Run.Warnings)
	}
	if got != a.Count {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%d warning(s)", a.Count), Actual: fmt.Sprintf("%d warning(s)", got)}
	}
	return nil
}

func assertUntranslated(result *Result, a Assertion) error {
	if result.Run == nil {
		return &AssertionError{Type: a.Type, Expected: "a completed run", Actual: "run aborted"}
	}
	var got []string
	for _, f := range result.Run.Files {
		if f.Name == a.File {
			got = f.Untranslated
		}
	}
	if !slices.Equal(got, a.Keys) {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%v", a.Keys), Actual: fmt.Sprintf("%v", got)}
	}
	return nil
}

func assertHistoryKeys(a Assertion, actx *AssertionContext) error {
	if actx == nil || actx.Store == nil {
		return fmt.Errorf("%s requires options.history", a.Type)
	}
	files, err := actx.Store.UntranslatedKeys(actx.Ctx, actx.RunID)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	var got []string
	for _, f := range files {
		if f.File == a.File {
			got = f.Keys
		}
	}
	if !slices.Equal(got, a.Keys) {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%v", a.Keys), Actual: fmt.Sprintf("%v", got)}
	}
	return nil
}

func assertRunError(result *Result, a Assertion) error {
	if result.RunErr == nil {
		return &AssertionError{Type: a.Type, Expected: a.Error + " error", Actual: "run completed"}
	}
	var (
		parseErr *tree.ParseError
		ioErr    *locale.IOError
	)
	switch {
	case a.Error == "parse" && errors.As(result.RunErr, &parseErr):
		return nil
	case a.Error == "io" && errors.As(result.RunErr, &ioErr):
		return nil
	}
	return &AssertionError{Type: a.Type, Expected: a.Error + " error", Actual: result.RunErr.Error()}
}
