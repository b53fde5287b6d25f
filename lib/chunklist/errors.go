// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"errors"
	"fmt"
)

// ErrInvalidChunkSize is returned when a nominal chunk size is zero or
// does not fit in a record's uint32 size field.
var ErrInvalidChunkSize = errors.New("invalid chunk size")

// ErrNotFound is returned by [Locate] when no candidate chunklist path
// exists for a target file.
var ErrNotFound = errors.New("no chunklist found")

// FormatErrorKind classifies a [FormatError].
type FormatErrorKind int

const (
	// BadMagic means the first four bytes are not the chunklist magic.
	BadMagic FormatErrorKind = iota + 1

	// UnsupportedVersion means the file version or chunk method is not
	// one this package knows how to verify.
	UnsupportedVersion

	// Truncated means the input ends before a length it declares.
	Truncated

	// Malformed means the header is internally inconsistent (offsets
	// that overlap the header, counts that disagree with the record
	// array, and similar).
	Malformed
)

// String returns a short lower-case name for the kind.
func (k FormatErrorKind) String() string {
	switch k {
	case BadMagic:
		return "bad magic"
	case UnsupportedVersion:
		return "unsupported version"
	case Truncated:
		return "truncated"
	case Malformed:
		return "malformed"
	default:
		return fmt.Sprintf("format error %d", int(k))
	}
}

// FormatError reports a chunklist that cannot be decoded or verified
// because of its contents.
type FormatError struct {
	Kind   FormatErrorKind
	Detail string
}

func (e *FormatError) Error() string {
	if e.Detail == "" {
		return "chunklist: " + e.Kind.String()
	}
	return "chunklist: " + e.Kind.String() + ": " + e.Detail
}

// Is matches another *FormatError with the same Kind, so callers can
// write errors.Is(err, &FormatError{Kind: BadMagic}).
func (e *FormatError) Is(target error) bool {
	other, ok := target.(*FormatError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func formatErrorf(kind FormatErrorKind, format string, args ...any) *FormatError {
	return &FormatError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// IOError reports a failure to open, stat, read, or write a file. Path
// identifies which file; callers use it to tell a missing manifest
// from a missing target.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// MismatchError is the error form of a failed [Result]. It is produced
// by [Result.Err] for callers that want a single error return.
type MismatchError struct {
	Index  uint64
	Reason Reason
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("chunklist: verification failed at chunk %d: %s", e.Index, e.Reason)
}
