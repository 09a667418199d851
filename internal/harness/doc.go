// Package harness runs merge scenarios described in YAML and checks their
// outcome with assertions and golden snapshots.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	options:
//	  checkdiff: true
//	  crosscheck: true
//	  patch: true
//	  history: true
//	current:
//	  fr.json: '{"a": {"b": "X", "c": "Y"}}'
//	updated:
//	  fr.json: '{"a": {"b": "Z"}}'
//	output:            # files already in the output folder (optional)
//	  de.json: '{}'
//	assertions:
//	  - type: file_equals
//	    file: fr.json
//	    content: "..."
//	  - type: untranslated
//	    file: fr.json
//	    keys: [a.c]
//
// # Assertion Types
//
//   - file_equals: an output file has exactly the given content
//   - file_contains: an output file contains the given text
//   - file_absent: an output file was not written
//   - warning_count: number of unmatched-file warnings
//   - untranslated: untranslated keys reported for a file, in order
//   - history_keys: untranslated keys recorded in the run history
//   - run_error: the run aborted with an error of the given kind ("parse", "io")
//
// # Determinism
//
// Every scenario runs in its own directory with a fixed run ID (run_id,
// default "scenario-run") and, when history is enabled, a fresh in-memory
// SQLite store. Absolute paths in the trace are made relative to the
// scenario directory, so golden snapshots are stable across machines.
package harness
