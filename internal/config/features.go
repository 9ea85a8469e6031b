package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"erasec/internal/diag"
	"erasec/internal/trans"
)

var (
	// bridges and the enum constructor convention arrived together
	bridgesSince = mustConstraint(">= 1.5")
	enumsSince   = mustConstraint(">= 1.5")
)

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// TargetVersion parses the configured target. "1.5" and "5" are accepted
// as well as full versions.
func (c *Config) TargetVersion() (*semver.Version, error) {
	raw := strings.TrimSpace(c.Target.Version)
	if raw == "" {
		raw = DefaultTarget
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, &Error{Code: diag.CfgInvalidVersion, Path: c.Path, Err: fmt.Errorf("target version %q: %w", raw, err)}
	}
	return v, nil
}

// TransOptions derives the translator switches from the target version.
func (c *Config) TransOptions() (trans.Options, error) {
	v, err := c.TargetVersion()
	if err != nil {
		return trans.Options{}, err
	}
	bridges := bridgesSince.Check(v)
	return trans.Options{
		AddBridges:        bridges,
		AllowEnums:        enumsSince.Check(v),
		VisibilityBridges: bridges && c.Bridges.Visibility,
	}, nil
}
