// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the cnkl binary.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a flag set built either
// by a [Command.Flags] factory or from a tagged params struct
// ([Command.Params], see [BindFlags]), and a Run function. Commands
// are assembled into a tree in cmd/cnkl/commands and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing,
// and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// Exit status is decided in one place, [Report]: an [ExitError]
// carries an explicit code, a [ToolError] in the validation category
// maps to [ExitUsage], and anything else exits 1.
//
// [NewCommandLogger] and [ProgressPrinter] pick their output form by
// whether stderr is a terminal.
package cli
