// Package workspaceconfig loads kiln.yaml, the optional per-workspace
// defaults file (default emitter, default output directory, job count,
// whether to persist CLI flags back to disk). Grounded on
// internal/adapters/config/loader.go's file-load/yaml-unmarshal/zerr-wrap
// shape, adapted from bob's task-graph schema to kiln's emitter/output
// defaults.
package workspaceconfig

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Config is the decoded contents of kiln.yaml. Load and Save only read and
// write the file; nothing else in this module consumes a Config, so
// cli.Generate and cli.RunDirect do not pick up its values.
type Config struct {
	// DefaultEmitter names a default backend: "ninja", "direct", or
	// "msvc".
	DefaultEmitter string `yaml:"defaultEmitter"`
	// DefaultOutputDir is the directory emitted build files are written
	// under, relative to the workspace root, when no target directory is
	// given on the command line.
	DefaultOutputDir string `yaml:"defaultOutputDir"`
	// Jobs is a job count for the direct builder; zero stands for the
	// scheduler's default of one job per CPU (runtime.NumCPU).
	Jobs int `yaml:"jobs"`
	// PersistFlags records whether resolved flags are to be written back
	// into this file; Save writes the field, nothing acts on it.
	PersistFlags bool `yaml:"persistFlags"`
}

// Default returns the configuration used when kiln.yaml is absent.
func Default() Config {
	return Config{DefaultEmitter: "ninja", DefaultOutputDir: "build"}
}

// Load reads kiln.yaml from dir. A missing file is not an error — it
// returns Default() — matching the original source's tolerance for an
// absent build description companion file.
func Load(dir string) (Config, error) {
	path := filepath.Join(dir, "kiln.yaml")
	data, err := os.ReadFile(path) //nolint:gosec // path is workspace-relative, not user-supplied over a trust boundary
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, zerr.Wrap(err, "reading kiln.yaml")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, zerr.Wrap(err, "parsing kiln.yaml")
	}
	return cfg, nil
}

// Save writes cfg back to dir/kiln.yaml.
func Save(dir string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return zerr.Wrap(err, "encoding kiln.yaml")
	}
	path := filepath.Join(dir, "kiln.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.Wrap(err, "writing kiln.yaml")
	}
	return nil
}
