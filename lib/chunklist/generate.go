// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"fmt"
	"io"
	"os"
)

// Progress is delivered to an observer after each chunk is hashed.
// Index is zero-based.
type Progress struct {
	Index uint64
	Count uint64
	Size  uint32
}

// GenerateOptions configure [Generate] and [GenerateFrom].
type GenerateOptions struct {
	// ChunkSize is the nominal chunk size. Zero means DefaultChunkSize.
	ChunkSize uint64

	// SignatureMethod is recorded in the header. The zero value is
	// SignatureNone; [NewGenerateOptions] defaults to SignatureRev1.
	SignatureMethod SignatureMethod

	// Digester hashes each chunk. Nil means SHA256.
	Digester Digester

	// Progress, if set, is called once per chunk.
	Progress func(Progress)
}

// NewGenerateOptions returns the options the cnkl tool has always
// used: 10 MiB chunks, SHA-256, signature method rev1.
func NewGenerateOptions() GenerateOptions {
	return GenerateOptions{
		ChunkSize:       DefaultChunkSize,
		SignatureMethod: SignatureRev1,
	}
}

// Generate builds a chunklist for the file at path. The file's length
// at open time determines the plan; the file is then read once,
// sequentially. Nothing is written.
func Generate(path string, options GenerateOptions) (*Chunklist, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &IOError{Op: "open", Path: path, Err: fmt.Errorf("not a regular file (mode %s)", info.Mode())}
	}
	adviseSequential(file)

	list, err := GenerateFrom(file, uint64(info.Size()), options)
	if err != nil {
		if ioErr, ok := err.(*IOError); ok && ioErr.Path == "" {
			ioErr.Path = path
		}
		return nil, err
	}
	return list, nil
}

// GenerateFrom builds a chunklist from the first size bytes of source.
// A source that ends before size bytes is an [*IOError] wrapping
// io.ErrUnexpectedEOF.
func GenerateFrom(source io.Reader, size uint64, options GenerateOptions) (*Chunklist, error) {
	chunkSize := options.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	plan, err := Plan(size, chunkSize)
	if err != nil {
		return nil, err
	}
	digester := digesterOrDefault(options.Digester)
	reader := newChunkReader(source)

	count := uint64(len(plan))
	records := make([]Record, 0, count)
	for _, chunk := range plan {
		data, err := reader.next(chunk.Size)
		if err != nil {
			return nil, &IOError{
				Op:  fmt.Sprintf("read chunk %d at offset %d", chunk.Index, chunk.Offset),
				Err: err,
			}
		}
		records = append(records, Record{Size: chunk.Size, Digest: digester.Digest(data)})
		if options.Progress != nil {
			options.Progress(Progress{Index: chunk.Index, Count: count, Size: chunk.Size})
		}
	}

	return &Chunklist{
		Header: Header{
			Magic:            Magic,
			HeaderSize:       HeaderSize,
			FileVersion:      FileVersion1,
			ChunkMethod:      ChunkMethodFixed,
			SignatureMethod:  options.SignatureMethod,
			ChunkCount:       count,
			ChunkTableOffset: HeaderSize,
			SignatureOffset:  HeaderSize + count*RecordSize,
		},
		Records: records,
	}, nil
}
