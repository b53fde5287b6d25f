// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for chunklist packages.
//
// [WriteFile] writes content into a test-scoped temporary directory
// and returns the path. [PatternBytes] produces deterministic,
// non-repeating-at-small-scale content so that chunk digests differ
// from one chunk to the next without pulling in crypto/rand (whose
// output would make failures unreproducible).
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no internal dependencies.
package testutil
