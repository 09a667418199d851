package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultRunID is used when a scenario does not set run_id.
const DefaultRunID = "scenario-run"

// Scenario defines a merge scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Options enables the optional passes.
	Options Options `yaml:"options,omitempty"`

	// Current and Updated map file names to document content.
	Current map[string]string `yaml:"current"`
	Updated map[string]string `yaml:"updated"`

	// Output lists files present in the output folder before the run.
	Output map[string]string `yaml:"output,omitempty"`

	// RunID is the fixed run identifier; defaults to DefaultRunID.
	RunID string `yaml:"run_id,omitempty"`

	// Assertions validate the run.
	Assertions []Assertion `yaml:"assertions"`
}

// Options mirrors the command line switches.
type Options struct {
	CheckDiff  bool `yaml:"checkdiff"`
	CrossCheck bool `yaml:"crosscheck"`
	Patch      bool `yaml:"patch"`
	History    bool `yaml:"history"`
}

// Assertion validates the outcome of a run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// File is an output file name (file_*, untranslated, history_keys).
	File string `yaml:"file,omitempty"`

	// Content is the expected text (file_equals, file_contains).
	Content string `yaml:"content,omitempty"`

	// Keys are the expected key paths (untranslated, history_keys).
	Keys []string `yaml:"keys,omitempty"`

	// Count is the expected number (warning_count).
	Count int `yaml:"count,omitempty"`

	// Error is the expected error kind (run_error).
	Error string `yaml:"error,omitempty"`
}

// Assertion type constants.
const (
	AssertFileEquals   = "file_equals"
	AssertFileContains = "file_contains"
	AssertFileAbsent   = "file_absent"
	AssertWarningCount = "warning_count"
	AssertUntranslated = "untranslated"
	AssertHistoryKeys  = "history_keys"
	AssertRunError     = "run_error"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if scenario.RunID == "" {
		scenario.RunID = DefaultRunID
	}
	return &scenario, nil
}

// validateScenario checks required fields and file names.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for section, files := range map[string]map[string]string{
		"current": s.Current,
		"updated": s.Updated,
		"output":  s.Output,
	} {
		for name := range files {
			if name == "" || filepath.Base(name) != name {
				return fmt.Errorf("%s: %q must be a plain file name", section, name)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFileEquals, AssertFileAbsent:
		if a.File == "" {
			return fmt.Errorf("assertions[%d]: file is required for %s", index, a.Type)
		}
	case AssertFileContains:
		if a.File == "" || a.Content == "" {
			return fmt.Errorf("assertions[%d]: file and content are required for %s", index, a.Type)
		}
	case AssertWarningCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertUntranslated, AssertHistoryKeys:
		if a.File == "" {
			return fmt.Errorf("assertions[%d]: file is required for %s", index, a.Type)
		}
	case AssertRunError:
		if a.Error != "parse" && a.Error != "io" {
			return fmt.Errorf("assertions[%d]: error must be \"parse\" or \"io\" for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
