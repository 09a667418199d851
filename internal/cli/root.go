package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/transmerge/internal/pipeline"
)

// RootOptions holds global flags.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// MergeOptions holds the flags of the merge run.
type MergeOptions struct {
	*RootOptions
	CurrentDir string
	UpdatedDir string
	OutputDir  string
	CheckDiff  bool
	CrossCheck bool
	Patch      bool
	History    string
	ConfigFile string

	// IDGenerator allows overriding the run ID source (for testing).
	// If nil, defaults to pipeline.UUIDv7Generator.
	IDGenerator pipeline.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// DefaultFolder is where translation folders live unless told otherwise.
func DefaultFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("Documents", "Translations")
	}
	return filepath.Join(home, "Documents", "Translations")
}

// NewRootCommand creates the transmerge command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&MergeOptions{RootOptions: &RootOptions{}})
}

func newRootCommand(opts *MergeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transmerge",
		Short: "Merge updated translation files into the current ones",
		Long: `Merge translation files from two folders.

For every locale file in the current translations folder with a same-named
file in the updated translations folder, values of keys that already exist
in the current file are replaced by the updated ones and the result is
written to the output folder. Keys only present in the updated file are
dropped. Reports of untranslated keys are written next to the merged files.

JSON (.json) and YAML (.yaml, .yml) locale files are supported.

Example:
  transmerge --current_translations ./current --updated_translations ./updated -o ./output
  transmerge --config transmerge.cue --checkdiff --crosscheck`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	folder := DefaultFolder()
	flags := cmd.Flags()
	flags.StringVar(&opts.CurrentDir, "current_translations", filepath.Join(folder, "current_translations"), "path to the current translations folder")
	flags.StringVar(&opts.UpdatedDir, "updated_translations", filepath.Join(folder, "updated_translations"), "path to the updated translations folder")
	flags.StringVarP(&opts.OutputDir, "output", "o", filepath.Join(folder, "output"), "path to the output folder for merged files")
	flags.BoolVar(&opts.CheckDiff, "checkdiff", false, "check for missing keys in the output files compared to the current translations")
	flags.BoolVar(&opts.CrossCheck, "crosscheck", false, "check for missing keys between output translation files")
	flags.BoolVar(&opts.Patch, "patch", false, "write a unified diff of the merged changes to merged_changes.patch")
	flags.StringVar(&opts.History, "history", "", "record the run in this SQLite database")
	flags.StringVar(&opts.ConfigFile, "config", "", "CUE config file; flags given explicitly win over it")

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
