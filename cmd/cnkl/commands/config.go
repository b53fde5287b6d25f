// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"

	"github.com/bureau-foundation/chunklist/cmd/cnkl/cli"
	"github.com/bureau-foundation/chunklist/lib/config"
)

// configParams is embedded by every command that reads defaults.
type configParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"YAML defaults file (overrides $CNKL_CONFIG)"`
}

// loadConfig resolves the config file (--config, then $CNKL_CONFIG,
// then built-in defaults) and applies its log level. verbose forces
// debug so per-chunk progress reaches a non-terminal log.
func (o *Options) loadConfig(params configParams, verbose bool) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if params.ConfigPath != "" {
		cfg, err = config.LoadFile(params.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.WithExitCode(cli.ExitConfig, err)
	}

	// LoadFile has already validated the level.
	level, _ := cfg.SlogLevel()
	if verbose || cfg.Verbose {
		level = slog.LevelDebug
	}
	o.Level.Set(level)
	return cfg, nil
}
