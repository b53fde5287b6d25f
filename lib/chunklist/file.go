// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// maxFileSize bounds how much of a file ReadFile will load. A manifest
// for a petabyte at the smallest practical chunk size is well under
// this; anything larger is not a chunklist.
const maxFileSize = 1 << 30

// ReadFile loads and decodes the chunklist at path. Open and read
// failures are [*IOError]; content problems are [*FormatError].
func ReadFile(path string) (*Chunklist, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFileSize+1))
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	if len(data) > maxFileSize {
		return nil, formatErrorf(Malformed, "%s is larger than %d bytes", path, maxFileSize)
	}

	list, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// WriteFile atomically writes list to path. The encoding goes to a
// temporary file in the destination directory, is synced, and is then
// renamed over path, so readers see either the previous file or the
// complete new one. On any failure the temporary file is removed and
// path is untouched.
func WriteFile(path string, list *Chunklist) error {
	if err := list.Validate(); err != nil {
		return err
	}

	directory := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(directory, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return &IOError{Op: "create temporary file in", Path: directory, Err: err}
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := list.WriteTo(writer); err != nil {
		tmpFile.Close()
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := writer.Flush(); err != nil {
		tmpFile.Close()
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return &IOError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		return &IOError{Op: "close", Path: tmpPath, Err: err}
	}
	// CreateTemp uses 0600; a manifest is not a secret.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return &IOError{Op: "chmod", Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &IOError{Op: "rename to", Path: path, Err: err}
	}

	success = true
	return nil
}
