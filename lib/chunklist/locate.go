// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultExtensions are the sidecar suffixes probed by [Locate], in
// order. "chunklist" is what [DefaultPath] produces; "integrityDataV1"
// is the name used by installer images.
var DefaultExtensions = []string{"chunklist", "integrityDataV1"}

// DefaultPath returns the path a generated chunklist for target is
// written to when no output path is given.
func DefaultPath(target string) string {
	return target + "." + DefaultExtensions[0]
}

// Locate returns the first existing "<target>.<extension>" for the
// given extensions (DefaultExtensions if empty). It returns an error
// wrapping [ErrNotFound] when none exists, or an [*IOError] if a
// candidate cannot be checked for a reason other than absence.
func Locate(target string, extensions []string) (string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	for _, extension := range extensions {
		candidate := target + "." + extension
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				continue
			}
			return candidate, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return "", &IOError{Op: "stat", Path: candidate, Err: err}
	}
	return "", fmt.Errorf("%w for %s (tried extensions %v)", ErrNotFound, target, extensions)
}
