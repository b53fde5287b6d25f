// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"errors"
	"io"
	"slices"
)

// readStep bounds how far the buffer grows ahead of bytes actually
// read, so a record claiming a huge size against a short source costs
// at most one step of allocation before io.ErrUnexpectedEOF.
const readStep = 1 << 20

// chunkReader reads consecutive chunks from a source into one buffer
// that grows to the largest chunk seen and is never shrunk. The slice
// returned by next is valid until the following call.
type chunkReader struct {
	source io.Reader
	buffer []byte
	offset uint64
}

func newChunkReader(source io.Reader) *chunkReader {
	return &chunkReader{source: source}
}

// next reads exactly size bytes. A source that ends early returns
// io.ErrUnexpectedEOF, including when it ends exactly on the previous
// chunk boundary.
func (r *chunkReader) next(size uint32) ([]byte, error) {
	want := int(size)
	data := r.buffer[:0]
	for len(data) < want {
		step := min(want-len(data), readStep)
		data = slices.Grow(data, step)
		n, err := io.ReadFull(r.source, data[len(data):len(data)+step])
		data = data[:len(data)+n]
		r.offset += uint64(n)
		if err != nil {
			r.buffer = data[:0]
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
	r.buffer = data[:0]
	return data, nil
}

// atEOF reports whether the source has no bytes left. It consumes at
// most one byte.
func (r *chunkReader) atEOF() (bool, error) {
	var probe [1]byte
	for {
		n, err := r.source.Read(probe[:])
		if n > 0 {
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
	}
}
