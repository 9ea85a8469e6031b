package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"erasec/internal/config"
	"erasec/internal/trans"
)

// exitError signals a failed run whose details were already printed.
type exitError struct{ msg string }

func (e *exitError) Error() string { return e.msg }

func isExitSilent(err error) bool {
	var ee *exitError
	return errors.As(err, &ee)
}

// applyColorMode sets the global color switch from --color.
func applyColorMode(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// settings is the effective configuration of one command: erasec.toml (or
// defaults) with command line overrides applied.
type settings struct {
	cfg     *config.Config
	opts    trans.Options
	maxDiag int
	quiet   bool
	timings bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	root := cmd.Root().PersistentFlags()
	path, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg *config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	// флаги команды перекрывают конфиг
	if f := cmd.Flags().Lookup("target"); f != nil && f.Changed {
		cfg.Target.Version = f.Value.String()
	}
	opts, err := cfg.TransOptions()
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("no-bridges"); f != nil && f.Changed && f.Value.String() == "true" {
		opts.AddBridges = false
		opts.VisibilityBridges = false
	}

	s := &settings{cfg: cfg, opts: opts, maxDiag: cfg.Diagnostics.Max}
	if n, err := root.GetInt("max-diagnostics"); err == nil && n > 0 {
		s.maxDiag = n
	}
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return s, nil
}
