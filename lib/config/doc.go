// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the cnkl tool.
//
// Configuration is loaded from a single file named by either the
// CNKL_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no file
// search: when neither is given, [Default] applies unchanged.
// Command-line flags override whatever the file sets.
//
// Sizes accept integers or human-readable strings ("10MiB", "4 MB",
// "65536") via [ByteSize]. Variable expansion is performed on path
// fields after loading: ${HOME} and ${VAR:-default} patterns are
// expanded.
//
// Key exports:
//
//   - [Config] -- chunk size, signature method, probe extensions, logging
//   - [Default] -- returns a Config matching the historical cnkl defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends only on lib/chunklist for its constants.
package config
