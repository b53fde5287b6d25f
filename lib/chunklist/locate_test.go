// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
}

func TestLocateProbeOrder(t *testing.T) {
	directory := t.TempDir()
	target := filepath.Join(directory, "Install.dmg")

	if _, err := Locate(target, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("no candidates: error = %v, want ErrNotFound", err)
	}

	touch(t, target+".integrityDataV1")
	got, err := Locate(target, nil)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != target+".integrityDataV1" {
		t.Errorf("Locate = %q, want the integrityDataV1 sidecar", got)
	}

	touch(t, target+".chunklist")
	got, err = Locate(target, nil)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != DefaultPath(target) {
		t.Errorf("Locate = %q, want %q (first extension wins)", got, DefaultPath(target))
	}
}

func TestLocateCustomExtensionsAndDirectories(t *testing.T) {
	directory := t.TempDir()
	target := filepath.Join(directory, "disk.img")

	if err := os.Mkdir(target+".cl", 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	touch(t, target+".manifest")

	got, err := Locate(target, []string{"cl", "manifest"})
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != target+".manifest" {
		t.Errorf("Locate = %q, want directories skipped", got)
	}
}
