// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"fmt"
	"math"
)

const (
	// DefaultChunkSize is the nominal chunk size used when none is
	// configured: 10 MiB.
	DefaultChunkSize = 10 * 1024 * 1024

	// MaxChunkSize is the largest nominal chunk size a record's uint32
	// size field can describe.
	MaxChunkSize = math.MaxUint32
)

// PlannedChunk is one entry of a chunk plan.
type PlannedChunk struct {
	Index  uint64
	Offset uint64
	Size   uint32
}

// ChunkCount returns ceil(fileSize / chunkSize). The caller must have
// validated chunkSize.
func ChunkCount(fileSize, chunkSize uint64) uint64 {
	if fileSize == 0 {
		return 0
	}
	return (fileSize-1)/chunkSize + 1
}

// checkChunkSize rejects sizes the record format cannot hold.
func checkChunkSize(chunkSize uint64) error {
	if chunkSize == 0 || chunkSize > MaxChunkSize {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidChunkSize, chunkSize, uint64(MaxChunkSize))
	}
	return nil
}

// Plan computes the ordered chunk boundaries for a file of fileSize
// bytes. Every chunk but the last is chunkSize bytes; the last holds
// the rest, which is a full chunkSize when fileSize is an exact
// multiple. An empty file has an empty plan.
func Plan(fileSize, chunkSize uint64) ([]PlannedChunk, error) {
	if err := checkChunkSize(chunkSize); err != nil {
		return nil, err
	}

	count := ChunkCount(fileSize, chunkSize)
	plan := make([]PlannedChunk, 0, count)
	for index := uint64(0); index < count; index++ {
		offset := index * chunkSize
		size := chunkSize
		if index == count-1 {
			size = fileSize - offset
		}
		plan = append(plan, PlannedChunk{
			Index:  index,
			Offset: offset,
			Size:   uint32(size),
		})
	}
	return plan, nil
}
