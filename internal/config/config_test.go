package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"erasec/internal/diag"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	opts, err := Default().TransOptions()
	if err != nil {
		t.Fatalf("TransOptions: %v", err)
	}
	if !opts.AddBridges || !opts.AllowEnums || !opts.VisibilityBridges {
		t.Fatalf("default options = %+v, want everything on", opts)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[target]
version = "1.8"

[bridges]
visibility = false

[output]
dir = "build"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.Diagnostics.Max != 100 {
		t.Fatalf("Diagnostics.Max = %d, want default 100", cfg.Diagnostics.Max)
	}
	if cfg.Output.Dir != "build" {
		t.Fatalf("Output.Dir = %q", cfg.Output.Dir)
	}
	opts, err := cfg.TransOptions()
	if err != nil {
		t.Fatalf("TransOptions: %v", err)
	}
	if !opts.AddBridges || opts.VisibilityBridges {
		t.Fatalf("options = %+v", opts)
	}
}

func TestOldTargetDisablesBridges(t *testing.T) {
	for _, version := range []string{"1.4", "1.4.2", "1"} {
		cfg := Default()
		cfg.Target.Version = version
		opts, err := cfg.TransOptions()
		if err != nil {
			t.Fatalf("%s: %v", version, err)
		}
		if opts.AddBridges || opts.AllowEnums || opts.VisibilityBridges {
			t.Fatalf("%s: options = %+v, want all off", version, opts)
		}
	}
}

func TestInvalidVersion(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[target]\nversion = \"one point five\"\n")
	_, err := Load(path)
	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if cfgErr.Code != diag.CfgInvalidVersion {
		t.Fatalf("code = %v, want %v", cfgErr.Code, diag.CfgInvalidVersion)
	}
}

func TestUnknownKeysAreRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[bridges]\nvisibilty = true\n")
	_, err := Load(path)
	var cfgErr *Error
	if !errors.As(err, &cfgErr) || cfgErr.Code != diag.CfgInvalidFile {
		t.Fatalf("err = %v, want CfgInvalidFile", err)
	}
}

func TestMissingTargetVersion(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[target]\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for [target] without version")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[diagnostics]\nmax = 7\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Diagnostics.Max != 7 {
		t.Fatalf("Diagnostics.Max = %d, want 7", cfg.Diagnostics.Max)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != "" || cfg.Target.Version != DefaultTarget {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}
