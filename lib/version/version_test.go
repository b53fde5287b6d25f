// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func setBuild(t *testing.T, commit, dirty string) {
	t.Helper()
	savedCommit, savedDirty := GitCommit, GitDirty
	t.Cleanup(func() { GitCommit, GitDirty = savedCommit, savedDirty })
	GitCommit, GitDirty = commit, dirty
}

func TestInfo(t *testing.T) {
	setBuild(t, "abc1234", "false")
	if got := Info(); !strings.HasPrefix(got, Version+" (abc1234, ") {
		t.Errorf("Info() = %q", got)
	}

	setBuild(t, "abc1234", "true")
	if got := Info(); !strings.Contains(got, "abc1234-dirty") {
		t.Errorf("dirty Info() = %q, want -dirty suffix on commit", got)
	}
}

func TestFull(t *testing.T) {
	got := Full()
	if !strings.Contains(got, runtime.Version()) {
		t.Errorf("Full() = %q, missing Go version", got)
	}
	if !strings.Contains(got, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Full() = %q, missing platform", got)
	}
}

func TestCurrent(t *testing.T) {
	setBuild(t, "def5678", "true")
	info := Current()
	if info.Commit != "def5678" || !info.Dirty {
		t.Errorf("Current() = %+v, want commit def5678 dirty", info)
	}
}
