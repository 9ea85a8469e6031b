// Package config loads erasec.toml and turns the target version into the
// feature switches of the translator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"erasec/internal/diag"
)

// FileName is looked up from the working directory upwards.
const FileName = "erasec.toml"

// DefaultTarget is used when no target version is configured.
const DefaultTarget = "1.5"

// Config is the decoded erasec.toml. Path is empty for defaults.
type Config struct {
	Path        string            `toml:"-"`
	Target      TargetConfig      `toml:"target"`
	Bridges     BridgesConfig     `toml:"bridges"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Output      OutputConfig      `toml:"output"`
}

type TargetConfig struct {
	Version string `toml:"version"`
}

type BridgesConfig struct {
	// Visibility enables forwarding bridges for public methods inherited
	// from non-public classes.
	Visibility bool `toml:"visibility"`
}

type DiagnosticsConfig struct {
	Max int `toml:"max"`
}

type OutputConfig struct {
	Dir string `toml:"dir"`
}

// Error is a configuration problem tied to a diagnostic code.
type Error struct {
	Code diag.Code
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Code.ID(), e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code.ID(), e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Default returns the configuration used without erasec.toml.
func Default() *Config {
	return &Config{
		Target:      TargetConfig{Version: DefaultTarget},
		Bridges:     BridgesConfig{Visibility: true},
		Diagnostics: DiagnosticsConfig{Max: 100},
	}
}

// Find walks up from startDir looking for erasec.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest erasec.toml above startDir, or the defaults
// when there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, &Error{Code: diag.CfgInvalidFile, Path: path, Err: fmt.Errorf("failed to parse TOML: %w", err)}
	}
	cfg.Path = path
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, &Error{Code: diag.CfgInvalidFile, Path: path, Err: fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))}
	}
	if meta.IsDefined("target") && !meta.IsDefined("target", "version") {
		return nil, &Error{Code: diag.CfgInvalidFile, Path: path, Err: errors.New("missing [target].version")}
	}
	if cfg.Diagnostics.Max < 0 {
		return nil, &Error{Code: diag.CfgInvalidFile, Path: path, Err: errors.New("[diagnostics].max must not be negative")}
	}
	if _, err := cfg.TargetVersion(); err != nil {
		return nil, err
	}
	return cfg, nil
}
