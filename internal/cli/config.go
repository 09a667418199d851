package cli

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/pflag"
)

//go:embed config_schema.cue
var configSchema string

// FileConfig is the content of a --config file. Nil fields were not set.
type FileConfig struct {
	CurrentTranslations *string `json:"current_translations,omitempty"`
	UpdatedTranslations *string `json:"updated_translations,omitempty"`
	Output              *string `json:"output,omitempty"`
	CheckDiff           *bool   `json:"checkdiff,omitempty"`
	CrossCheck          *bool   `json:"crosscheck,omitempty"`
	Patch               *bool   `json:"patch,omitempty"`
	History             *string `json:"history,omitempty"`
}

// LoadConfig reads a CUE config file and validates it against #Config.
// Unknown fields are rejected. Relative paths are resolved against the
// directory holding the file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeConfig, Message: fmt.Sprintf("reading config: %v", err)}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(configSchema, cue.Filename("config_schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, configError(err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, configError(err)
	}

	var fc FileConfig
	if err := unified.Decode(&fc); err != nil {
		return nil, configError(err)
	}

	base := filepath.Dir(path)
	for _, p := range []*string{fc.CurrentTranslations, fc.UpdatedTranslations, fc.Output, fc.History} {
		if p != nil {
			*p = resolvePath(*p, base)
		}
	}
	return &fc, nil
}

// Apply copies the file's settings into opts, except for flags that were
// set explicitly on the command line.
func (fc *FileConfig) Apply(opts *MergeOptions, flags *pflag.FlagSet) {
	setString := func(name string, dst *string, src *string) {
		if src != nil && !flags.Changed(name) {
			*dst = *src
		}
	}
	setBool := func(name string, dst *bool, src *bool) {
		if src != nil && !flags.Changed(name) {
			*dst = *src
		}
	}

	setString("current_translations", &opts.CurrentDir, fc.CurrentTranslations)
	setString("updated_translations", &opts.UpdatedDir, fc.UpdatedTranslations)
	setString("output", &opts.OutputDir, fc.Output)
	setString("history", &opts.History, fc.History)
	setBool("checkdiff", &opts.CheckDiff, fc.CheckDiff)
	setBool("crosscheck", &opts.CrossCheck, fc.CrossCheck)
	setBool("patch", &opts.Patch, fc.Patch)
}

func configError(err error) *LoadError {
	le := &LoadError{Code: ErrCodeConfig, Message: err.Error()}
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		le.Message = errs[0].Error()
		le.Pos = errs[0].Position()
	}
	return le
}

// resolvePath expands a leading ~ and makes p absolute relative to base.
func resolvePath(p, base string) string {
	p = expandHome(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
