// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to name inside a fresh t.TempDir() and
// returns the full path.
func WriteFile(t testing.TB, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// AppendFile appends content to the file at path.
func AppendFile(t testing.TB, path string, content []byte) {
	t.Helper()
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		t.Fatalf("opening %s for append: %v", path, err)
	}
	if _, err := file.Write(content); err != nil {
		file.Close()
		t.Fatalf("appending to %s: %v", path, err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("closing %s: %v", path, err)
	}
}

// FlipByte inverts every bit of the byte at offset in the file at path.
func FlipByte(t testing.TB, path string, offset int64) {
	t.Helper()
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer file.Close()

	var b [1]byte
	if _, err := file.ReadAt(b[:], offset); err != nil {
		t.Fatalf("reading %s at %d: %v", path, offset, err)
	}
	b[0] = ^b[0]
	if _, err := file.WriteAt(b[:], offset); err != nil {
		t.Fatalf("writing %s at %d: %v", path, offset, err)
	}
}

// PatternBytes returns size bytes of deterministic content. The
// modulus is prime so the pattern does not line up with power-of-two
// chunk sizes.
func PatternBytes(size int) []byte {
	content := make([]byte, size)
	for i := range content {
		content[i] = byte((i*7 + i/251) % 251)
	}
	return content
}
