package harness

import (
	"slices"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/transmerge/internal/tree"
)

// Snapshot renders the parts of a result that golden files pin down:
// the trace and every output file, as an ordered JSON document.
func Snapshot(name string, result *Result) ([]byte, error) {
	trace := tree.List{}
	for _, ev := range result.Trace {
		trace = append(trace, tree.String(ev.Kind+": "+ev.Message))
	}

	output := tree.New()
	names := make([]string, 0, len(result.Output))
	for name := range result.Output {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		output.Set(name, tree.String(result.Output[name]))
	}

	snap := tree.FromPairs(
		tree.O("scenario", tree.String(name)),
		tree.O("trace", trace),
		tree.O("output", output),
	)
	if result.RunErrText != "" {
		snap.Set("error", tree.String(result.RunErrText))
	}
	return tree.MarshalJSON(snap)
}

// RunWithGolden executes a scenario in a temporary directory and compares
// its snapshot against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can inspect assertion failures.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	dir := t.TempDir()
	result, err := Run(scenario, dir)
	if err != nil {
		return nil, err
	}

	data, err := Snapshot(scenario.Name, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
