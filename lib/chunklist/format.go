// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Format constants.
const (
	// Magic is "CNKL" read as a little-endian uint32.
	Magic uint32 = 0x4C4B4E43

	// HeaderSize is the encoded size of a version 1 header: 4-byte
	// magic + 4-byte header size + 4 single-byte fields + three
	// 8-byte counts/offsets.
	HeaderSize = 36

	// RecordSize is the encoded size of one chunk record: 4-byte size
	// + 32-byte digest.
	RecordSize = 4 + DigestSize

	// FileVersion1 is the only defined file version.
	FileVersion1 = 1

	// ChunkMethodFixed is fixed-size chunking, the only defined method.
	ChunkMethodFixed = 1
)

// SignatureMethod identifies the signature scheme whose block follows
// the chunk table. The value is carried through unchanged; this
// package neither writes nor checks signatures.
type SignatureMethod uint8

const (
	SignatureNone SignatureMethod = 0
	SignatureRev1 SignatureMethod = 1
	SignatureRev2 SignatureMethod = 3
)

// SignatureLength returns the block length defined for the method, or
// 0 if the method has no block or is unknown.
func (m SignatureMethod) SignatureLength() int {
	switch m {
	case SignatureRev1:
		return 256
	case SignatureRev2:
		return 808
	default:
		return 0
	}
}

func (m SignatureMethod) String() string {
	switch m {
	case SignatureNone:
		return "none"
	case SignatureRev1:
		return "rev1"
	case SignatureRev2:
		return "rev2"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// ParseSignatureMethod parses the names returned by
// [SignatureMethod.String].
func ParseSignatureMethod(name string) (SignatureMethod, error) {
	switch name {
	case "none":
		return SignatureNone, nil
	case "rev1":
		return SignatureRev1, nil
	case "rev2":
		return SignatureRev2, nil
	default:
		return 0, fmt.Errorf("unknown signature method %q (want none, rev1, or rev2)", name)
	}
}

// Header is the fixed header at offset 0 of a chunklist file.
type Header struct {
	Magic            uint32          `json:"magic"`
	HeaderSize       uint32          `json:"header_size"`
	FileVersion      uint8           `json:"file_version"`
	ChunkMethod      uint8           `json:"chunk_method"`
	SignatureMethod  SignatureMethod `json:"signature_method"`
	ChunkCount       uint64          `json:"chunk_count"`
	ChunkTableOffset uint64          `json:"chunk_table_offset"`
	SignatureOffset  uint64          `json:"signature_offset"`
}

// Record describes one chunk: its byte length and the digest of
// exactly those bytes.
type Record struct {
	Size   uint32 `json:"size"`
	Digest Digest `json:"digest"`
}

// Chunklist is a decoded manifest. Records[i] covers the bytes of the
// source that follow Records[0..i-1].
type Chunklist struct {
	Header  Header
	Records []Record

	// Signature holds the raw bytes starting at Header.SignatureOffset,
	// if the file extends that far. Opaque.
	Signature []byte
}

// TotalSize returns the sum of all record sizes.
func (c *Chunklist) TotalSize() uint64 {
	var total uint64
	for _, record := range c.Records {
		total += uint64(record.Size)
	}
	return total
}

// Validate checks the structural invariants of an in-memory chunklist
// before it is encoded: the record count and offsets must agree with
// the header.
func (c *Chunklist) Validate() error {
	if c.Header.Magic != Magic {
		return formatErrorf(BadMagic, "magic %#08x, want %#08x", c.Header.Magic, Magic)
	}
	if c.Header.HeaderSize < HeaderSize {
		return formatErrorf(Malformed, "header size %d is smaller than %d", c.Header.HeaderSize, HeaderSize)
	}
	if c.Header.ChunkCount != uint64(len(c.Records)) {
		return formatErrorf(Malformed, "header declares %d chunks, have %d records",
			c.Header.ChunkCount, len(c.Records))
	}
	if c.Header.ChunkTableOffset < uint64(c.Header.HeaderSize) {
		return formatErrorf(Malformed, "chunk table offset %d overlaps the %d-byte header",
			c.Header.ChunkTableOffset, c.Header.HeaderSize)
	}
	tableEnd := c.Header.ChunkTableOffset + c.Header.ChunkCount*RecordSize
	if len(c.Signature) > 0 && c.Header.SignatureOffset < tableEnd {
		return formatErrorf(Malformed, "signature offset %d overlaps the chunk table ending at %d",
			c.Header.SignatureOffset, tableEnd)
	}
	return nil
}

// MarshalBinary encodes the chunklist to its on-disk form.
func (c *Chunklist) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	if _, err := c.WriteTo(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// WriteTo writes the header, any padding up to ChunkTableOffset, the
// records, and the signature block (padded to SignatureOffset).
func (c *Chunklist) WriteTo(w io.Writer) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	var written int64
	write := func(data []byte, what string) error {
		n, err := w.Write(data)
		written += int64(n)
		if err != nil {
			return fmt.Errorf("writing %s: %w", what, err)
		}
		return nil
	}

	var header [HeaderSize]byte
	encodeHeader(header[:], &c.Header)
	if err := write(header[:], "chunklist header"); err != nil {
		return written, err
	}

	// Bytes between the fixed header and the table belong to a future
	// header revision; emit them as zeros.
	if gap := c.Header.ChunkTableOffset - HeaderSize; gap > 0 {
		if err := write(make([]byte, gap), "header padding"); err != nil {
			return written, err
		}
	}

	var record [RecordSize]byte
	for i := range c.Records {
		binary.LittleEndian.PutUint32(record[0:4], c.Records[i].Size)
		copy(record[4:], c.Records[i].Digest[:])
		if err := write(record[:], fmt.Sprintf("chunk %d record", i)); err != nil {
			return written, err
		}
	}

	if len(c.Signature) > 0 {
		if gap := int64(c.Header.SignatureOffset) - written; gap > 0 {
			if err := write(make([]byte, gap), "signature padding"); err != nil {
				return written, err
			}
		}
		if err := write(c.Signature, "signature block"); err != nil {
			return written, err
		}
	}

	return written, nil
}

// UnmarshalBinary decodes data into c. See [Decode].
func (c *Chunklist) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}

// Decode parses a chunklist from its on-disk form. Every declared
// length is checked against len(data) before it is used. Unknown
// versions and chunk methods decode successfully so they can be
// inspected; [Verify] refuses them.
func Decode(data []byte) (*Chunklist, error) {
	if len(data) < 4 {
		return nil, formatErrorf(Truncated, "%d bytes is too short for the magic", len(data))
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != Magic {
		return nil, formatErrorf(BadMagic, "magic %#08x, want %#08x", magic, Magic)
	}
	if len(data) < HeaderSize {
		return nil, formatErrorf(Truncated, "%d bytes is too short for the %d-byte header", len(data), HeaderSize)
	}

	var header Header
	decodeHeader(data[:HeaderSize], &header)

	length := uint64(len(data))
	if header.HeaderSize < HeaderSize {
		return nil, formatErrorf(Malformed, "header size %d is smaller than %d", header.HeaderSize, HeaderSize)
	}
	if uint64(header.HeaderSize) > length {
		return nil, formatErrorf(Truncated, "header size %d exceeds input length %d", header.HeaderSize, length)
	}
	if header.ChunkTableOffset < uint64(header.HeaderSize) {
		return nil, formatErrorf(Malformed, "chunk table offset %d overlaps the %d-byte header",
			header.ChunkTableOffset, header.HeaderSize)
	}
	if header.ChunkTableOffset > length {
		return nil, formatErrorf(Truncated, "chunk table offset %d exceeds input length %d",
			header.ChunkTableOffset, length)
	}

	// Compare by division: ChunkCount*RecordSize can overflow uint64
	// for a hostile count, while the available space cannot.
	available := (length - header.ChunkTableOffset) / RecordSize
	if header.ChunkCount > available {
		return nil, formatErrorf(Truncated, "header declares %d chunks, input holds at most %d",
			header.ChunkCount, available)
	}

	records := make([]Record, header.ChunkCount)
	offset := header.ChunkTableOffset
	for i := range records {
		entry := data[offset : offset+RecordSize]
		records[i].Size = binary.LittleEndian.Uint32(entry[0:4])
		copy(records[i].Digest[:], entry[4:])
		offset += RecordSize
	}

	list := &Chunklist{Header: header, Records: records}
	if header.SignatureOffset >= offset && header.SignatureOffset < length {
		list.Signature = bytes.Clone(data[header.SignatureOffset:])
	}
	return list, nil
}

func encodeHeader(buffer []byte, header *Header) {
	binary.LittleEndian.PutUint32(buffer[0:4], header.Magic)
	binary.LittleEndian.PutUint32(buffer[4:8], header.HeaderSize)
	buffer[8] = header.FileVersion
	buffer[9] = header.ChunkMethod
	buffer[10] = byte(header.SignatureMethod)
	buffer[11] = 0
	binary.LittleEndian.PutUint64(buffer[12:20], header.ChunkCount)
	binary.LittleEndian.PutUint64(buffer[20:28], header.ChunkTableOffset)
	binary.LittleEndian.PutUint64(buffer[28:36], header.SignatureOffset)
}

func decodeHeader(buffer []byte, header *Header) {
	header.Magic = binary.LittleEndian.Uint32(buffer[0:4])
	header.HeaderSize = binary.LittleEndian.Uint32(buffer[4:8])
	header.FileVersion = buffer[8]
	header.ChunkMethod = buffer[9]
	header.SignatureMethod = SignatureMethod(buffer[10])
	// buffer[11] is reserved and ignored on read.
	header.ChunkCount = binary.LittleEndian.Uint64(buffer[12:20])
	header.ChunkTableOffset = binary.LittleEndian.Uint64(buffer[20:28])
	header.SignatureOffset = binary.LittleEndian.Uint64(buffer[28:36])
}
