// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/chunklist/lib/testutil"
)

// lengthDigester is a deterministic fake: the digest holds the chunk
// length and a byte sum, which is enough to tell chunks apart in
// tests that exercise control flow rather than cryptography.
type lengthDigester struct {
	calls int
}

func (d *lengthDigester) Digest(data []byte) Digest {
	d.calls++
	var digest Digest
	binary.LittleEndian.PutUint64(digest[0:8], uint64(len(data)))
	var sum uint64
	for _, b := range data {
		sum = sum*31 + uint64(b)
	}
	binary.LittleEndian.PutUint64(digest[8:16], sum)
	return digest
}

func recordSizes(list *Chunklist) []uint32 {
	sizes := make([]uint32, len(list.Records))
	for i, record := range list.Records {
		sizes[i] = record.Size
	}
	return sizes
}

func TestGenerateTwentyFiveBytes(t *testing.T) {
	content := testutil.PatternBytes(25)
	path := testutil.WriteFile(t, "source.bin", content)

	list, err := Generate(path, GenerateOptions{ChunkSize: 10, SignatureMethod: SignatureRev1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got := recordSizes(list); !equalSizes(got, []uint32{10, 10, 5}) {
		t.Fatalf("record sizes = %v, want [10 10 5]", got)
	}
	ranges := [][2]int{{0, 10}, {10, 20}, {20, 25}}
	for i, r := range ranges {
		want := Digest(sha256.Sum256(content[r[0]:r[1]]))
		if list.Records[i].Digest != want {
			t.Errorf("record %d digest = %s, want %s", i, list.Records[i].Digest, want)
		}
	}

	header := list.Header
	if header.Magic != Magic || header.HeaderSize != HeaderSize ||
		header.FileVersion != FileVersion1 || header.ChunkMethod != ChunkMethodFixed {
		t.Errorf("header identity fields = %+v", header)
	}
	if header.SignatureMethod != SignatureRev1 {
		t.Errorf("SignatureMethod = %s, want rev1", header.SignatureMethod)
	}
	if header.ChunkCount != 3 || header.ChunkTableOffset != HeaderSize {
		t.Errorf("ChunkCount/ChunkTableOffset = %d/%d, want 3/%d", header.ChunkCount, header.ChunkTableOffset, HeaderSize)
	}
	if header.SignatureOffset != HeaderSize+3*RecordSize {
		t.Errorf("SignatureOffset = %d, want %d", header.SignatureOffset, HeaderSize+3*RecordSize)
	}
}

func TestGenerateChunkCountAndSizeSumLaws(t *testing.T) {
	for _, fileSize := range []int{1, 9, 10, 11, 99, 100, 101, 4096, 65537} {
		for _, chunkSize := range []uint64{1, 3, 10, 64, 4096} {
			if fileSize/int(chunkSize) > 5000 {
				continue
			}
			content := testutil.PatternBytes(fileSize)
			list, err := GenerateFrom(bytes.NewReader(content), uint64(fileSize), GenerateOptions{ChunkSize: chunkSize})
			if err != nil {
				t.Fatalf("GenerateFrom(%d, %d): %v", fileSize, chunkSize, err)
			}
			wantCount := (uint64(fileSize) + chunkSize - 1) / chunkSize
			if list.Header.ChunkCount != wantCount || uint64(len(list.Records)) != wantCount {
				t.Errorf("size %d chunk %d: count = %d (%d records), want %d",
					fileSize, chunkSize, list.Header.ChunkCount, len(list.Records), wantCount)
			}
			if list.TotalSize() != uint64(fileSize) {
				t.Errorf("size %d chunk %d: sizes sum to %d", fileSize, chunkSize, list.TotalSize())
			}
		}
	}
}

func TestGenerateExactMultipleHasFullLastChunk(t *testing.T) {
	list, err := GenerateFrom(bytes.NewReader(testutil.PatternBytes(20)), 20, GenerateOptions{ChunkSize: 10})
	if err != nil {
		t.Fatalf("GenerateFrom: %v", err)
	}
	if got := recordSizes(list); !equalSizes(got, []uint32{10, 10}) {
		t.Errorf("record sizes = %v, want [10 10]", got)
	}
}

func TestGenerateEmptyFile(t *testing.T) {
	path := testutil.WriteFile(t, "empty", nil)
	list, err := Generate(path, NewGenerateOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if list.Header.ChunkCount != 0 || len(list.Records) != 0 {
		t.Errorf("empty file produced %d chunks", list.Header.ChunkCount)
	}
	if list.Header.SignatureOffset != HeaderSize {
		t.Errorf("SignatureOffset = %d, want %d", list.Header.SignatureOffset, HeaderSize)
	}
	data, err := list.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(data) != HeaderSize {
		t.Errorf("encoded empty list is %d bytes, want %d", len(data), HeaderSize)
	}
}

func TestGenerateDefaults(t *testing.T) {
	options := NewGenerateOptions()
	if options.ChunkSize != 10485760 {
		t.Errorf("default chunk size = %d, want 10485760", options.ChunkSize)
	}
	if options.SignatureMethod != SignatureRev1 {
		t.Errorf("default signature method = %s, want rev1", options.SignatureMethod)
	}

	// A zero ChunkSize in hand-built options also means the default.
	content := testutil.PatternBytes(100)
	list, err := GenerateFrom(bytes.NewReader(content), 100, GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateFrom: %v", err)
	}
	if len(list.Records) != 1 || list.Records[0].Size != 100 {
		t.Errorf("records = %+v, want one 100-byte chunk", list.Records)
	}
}

func TestGenerateUsesInjectedDigester(t *testing.T) {
	digester := &lengthDigester{}
	content := testutil.PatternBytes(35)
	list, err := GenerateFrom(bytes.NewReader(content), 35, GenerateOptions{ChunkSize: 10, Digester: digester})
	if err != nil {
		t.Fatalf("GenerateFrom: %v", err)
	}
	if digester.calls != 4 {
		t.Errorf("digester called %d times, want 4", digester.calls)
	}
	if got := binary.LittleEndian.Uint64(list.Records[3].Digest[0:8]); got != 5 {
		t.Errorf("last record digest encodes length %d, want 5", got)
	}
}

func TestGenerateReportsProgress(t *testing.T) {
	var seen []Progress
	options := GenerateOptions{ChunkSize: 4, Progress: func(p Progress) { seen = append(seen, p) }}
	if _, err := GenerateFrom(bytes.NewReader(testutil.PatternBytes(10)), 10, options); err != nil {
		t.Fatalf("GenerateFrom: %v", err)
	}
	want := []Progress{{0, 3, 4}, {1, 3, 4}, {2, 3, 2}}
	if len(seen) != len(want) {
		t.Fatalf("progress calls = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("progress[%d] = %+v, want %+v", i, seen[i], want[i])
		}
	}
}

func TestGenerateMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")
	_, err := Generate(path, NewGenerateOptions())

	var ioError *IOError
	if !errors.As(err, &ioError) {
		t.Fatalf("error = %v, want *IOError", err)
	}
	if ioError.Path != path {
		t.Errorf("IOError.Path = %q, want %q", ioError.Path, path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error does not wrap fs.ErrNotExist: %v", err)
	}
}

func TestGenerateDirectoryIsIOError(t *testing.T) {
	_, err := Generate(t.TempDir(), NewGenerateOptions())
	var ioError *IOError
	if !errors.As(err, &ioError) {
		t.Fatalf("error = %v, want *IOError", err)
	}
}

func TestGenerateShortSource(t *testing.T) {
	// The declared size promises more than the reader holds.
	_, err := GenerateFrom(bytes.NewReader(testutil.PatternBytes(15)), 25, GenerateOptions{ChunkSize: 10})

	var ioError *IOError
	if !errors.As(err, &ioError) {
		t.Fatalf("error = %v, want *IOError", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("error does not wrap io.ErrUnexpectedEOF: %v", err)
	}
}

func TestGenerateInvalidChunkSize(t *testing.T) {
	path := testutil.WriteFile(t, "source", testutil.PatternBytes(10))
	_, err := Generate(path, GenerateOptions{ChunkSize: MaxChunkSize + 1})
	if !errors.Is(err, ErrInvalidChunkSize) {
		t.Errorf("error = %v, want ErrInvalidChunkSize", err)
	}
}
