// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"fmt"
	"io"
	"os"
)

// Status is the outcome of a completed verification.
type Status int

const (
	StatusPassed Status = iota + 1
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the status name in structured output.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Reason says why a verification failed.
type Reason int

const (
	// ReasonDigestMismatch: the chunk's bytes hash to a different
	// digest than the record holds.
	ReasonDigestMismatch Reason = iota + 1

	// ReasonTrailingData: every chunk matched but the source continues
	// past the last record.
	ReasonTrailingData
)

func (r Reason) String() string {
	switch r {
	case ReasonDigestMismatch:
		return "digest mismatch"
	case ReasonTrailingData:
		return "trailing data after last chunk"
	default:
		return ""
	}
}

// MarshalText renders the reason in structured output.
func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Result describes a completed verification. When Status is
// StatusFailed, FailedChunk, Reason, and (for a digest mismatch)
// Expected and Actual describe the first failing chunk. FailedChunk is
// always marshalled; read it only when Status is failed.
type Result struct {
	Status        Status `json:"status"`
	FailedChunk   uint64 `json:"failed_chunk"`
	Reason        Reason `json:"reason,omitempty"`
	Expected      Digest `json:"expected,omitzero"`
	Actual        Digest `json:"actual,omitzero"`
	ChunksChecked uint64 `json:"chunks_checked"`
	BytesChecked  uint64 `json:"bytes_checked"`
}

// Passed reports whether every chunk matched.
func (r Result) Passed() bool { return r.Status == StatusPassed }

// Err returns nil for a passing result and a [*MismatchError] for a
// failing one.
func (r Result) Err() error {
	if r.Passed() {
		return nil
	}
	return &MismatchError{Index: r.FailedChunk, Reason: r.Reason}
}

// VerifyOptions configure [Verify] and [VerifyFrom].
type VerifyOptions struct {
	// Digester must be the one the chunklist was generated with. Nil
	// means SHA256.
	Digester Digester

	// Progress, if set, is called before each chunk is read.
	Progress func(Progress)
}

// CheckSupported returns a [*FormatError] if the header's magic,
// version, or chunk method is not one this package can verify.
func CheckSupported(header Header) error {
	if header.Magic != Magic {
		return formatErrorf(BadMagic, "magic %#08x, want %#08x", header.Magic, Magic)
	}
	if header.FileVersion != FileVersion1 || header.ChunkMethod != ChunkMethodFixed {
		return formatErrorf(UnsupportedVersion, "file version %d, chunk method %d (supported: version %d, method %d)",
			header.FileVersion, header.ChunkMethod, FileVersion1, ChunkMethodFixed)
	}
	return nil
}

// Verify checks the file at path against list. The manifest is
// validated before the file is opened.
func Verify(list *Chunklist, path string, options VerifyOptions) (Result, error) {
	if err := CheckSupported(list.Header); err != nil {
		return Result{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return Result{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()
	adviseSequential(file)

	result, err := VerifyFrom(list, file, options)
	if err != nil {
		if ioErr, ok := err.(*IOError); ok && ioErr.Path == "" {
			ioErr.Path = path
		}
		return Result{}, err
	}
	return result, nil
}

// VerifyFrom checks source against list, reading the records' byte
// ranges in order and stopping at the first mismatch. A source that
// ends before the last record is satisfied is an [*IOError]; a source
// that continues past it fails with ReasonTrailingData at the last
// chunk index.
func VerifyFrom(list *Chunklist, source io.Reader, options VerifyOptions) (Result, error) {
	if err := CheckSupported(list.Header); err != nil {
		return Result{}, err
	}
	if list.Header.ChunkCount != uint64(len(list.Records)) {
		return Result{}, formatErrorf(Malformed, "header declares %d chunks, have %d records",
			list.Header.ChunkCount, len(list.Records))
	}

	digester := digesterOrDefault(options.Digester)
	reader := newChunkReader(source)
	count := uint64(len(list.Records))

	var result Result
	for i := range list.Records {
		record := &list.Records[i]
		index := uint64(i)
		if options.Progress != nil {
			options.Progress(Progress{Index: index, Count: count, Size: record.Size})
		}

		data, err := reader.next(record.Size)
		if err != nil {
			return Result{}, &IOError{
				Op:  fmt.Sprintf("read chunk %d at offset %d", index, result.BytesChecked),
				Err: err,
			}
		}

		actual := digester.Digest(data)
		result.ChunksChecked++
		result.BytesChecked += uint64(record.Size)
		if actual != record.Digest {
			result.Status = StatusFailed
			result.FailedChunk = index
			result.Reason = ReasonDigestMismatch
			result.Expected = record.Digest
			result.Actual = actual
			return result, nil
		}
	}

	done, err := reader.atEOF()
	if err != nil {
		return Result{}, &IOError{Op: fmt.Sprintf("read past offset %d", result.BytesChecked), Err: err}
	}
	if !done {
		result.Status = StatusFailed
		result.Reason = ReasonTrailingData
		if count > 0 {
			result.FailedChunk = count - 1
		}
		return result, nil
	}

	result.Status = StatusPassed
	return result, nil
}
