// Package config loads lintroll's configuration. Config files are
// discovered from the working root upward to the filesystem root and
// merged ancestor-first, so the file nearest the working root wins on
// conflicting keys.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"sort"

	koanftoml "github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/lintroll/pkg/errors"
	"github.com/arthur-debert/lintroll/pkg/logging"
)

// StarterConfig is a commented example configuration, written out by the
// init subcommand.
//
//go:embed embedded/lintroll.toml
var StarterConfig []byte

// configNames are the accepted config file names, tried in order; the
// first one present in a directory is used.
var configNames = []string{".lintroll.toml", "lintroll.toml"}

// GlobalConfig holds settings applied to all linters.
type GlobalConfig struct {
	// Glob patterns excluded for every linter
	Excludes []string `koanf:"excludes" toml:"excludes"`
}

// LinterConfig holds one linter's settings.
type LinterConfig struct {
	// Command to run
	Command string `koanf:"command" toml:"command"`

	// Fixed leading arguments
	Options []string `koanf:"options" toml:"options"`

	// Glob patterns selecting the files to process
	Includes []string `koanf:"includes" toml:"includes"`

	// Glob patterns vetoing selected files
	Excludes []string `koanf:"excludes" toml:"excludes"`

	// Working directory, relative to the run root
	WorkDir string `koanf:"work_dir" toml:"work_dir"`

	// Exclude linked git submodules from the walk (defaults to true)
	ExcludeSubmodules *bool `koanf:"exclude_submodules" toml:"exclude_submodules"`

	// Force one file per invocation
	SingleFile bool `koanf:"single_file" toml:"single_file"`

	// Detect changes by content hash instead of modification time
	CheckHash bool `koanf:"check_hash" toml:"check_hash"`

	// Percent-directive formats for parsing the linter's output
	Formats []string `koanf:"formats" toml:"formats"`
}

// SubmodulesExcluded resolves the exclude_submodules setting, which
// defaults to true when absent from the config file.
func (c LinterConfig) SubmodulesExcluded() bool {
	if c.ExcludeSubmodules == nil {
		return true
	}
	return *c.ExcludeSubmodules
}

// Root is the fully merged configuration.
type Root struct {
	Global  GlobalConfig            `koanf:"global" toml:"global"`
	Linters map[string]LinterConfig `koanf:"linter" toml:"linter"`
}

// LinterNames returns the configured linter names in sorted order, so
// runs are deterministic.
func (r *Root) LinterNames() []string {
	names := make([]string, 0, len(r.Linters))
	for name := range r.Linters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalTOML renders the merged configuration back to TOML.
func (r *Root) MarshalTOML() ([]byte, error) {
	return toml.Marshal(r)
}

// Load discovers and merges all config files from dir upward. A missing
// configuration is not an error; it yields an empty Root.
func Load(dir string) (*Root, error) {
	logger := logging.GetLogger("config")

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "resolving %s", dir)
	}

	paths := discover(abs)
	logger.Debug().Strs("files", paths).Msg("config files found")

	k := koanf.New(".")
	for _, p := range paths {
		if err := k.Load(file.Provider(p), koanftoml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse config %q", p)
		}
	}

	var root Root
	if err := k.Unmarshal("", &root); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "cannot unmarshal config")
	}
	return &root, nil
}

// discover walks from dir up to the filesystem root collecting config
// files, returned ancestor-first so later loads override earlier ones.
func discover(dir string) []string {
	var found []string
	for path := dir; ; {
		for _, name := range configNames {
			candidate := filepath.Join(path, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				found = append(found, candidate)
				break
			}
		}
		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		path = parent
	}

	// found is nearest-first; reverse to ancestor-first
	for i, j := 0, len(found)-1; i < j; i, j = i+1, j-1 {
		found[i], found[j] = found[j], found[i]
	}
	return found
}
