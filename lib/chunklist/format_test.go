// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

// sampleList builds a chunklist in memory without touching the
// filesystem: one record per size, digest = SHA-256 of size repeated
// bytes of the record index.
func sampleList(sizes ...uint32) *Chunklist {
	records := make([]Record, len(sizes))
	for i, size := range sizes {
		records[i] = Record{
			Size:   size,
			Digest: SHA256.Digest(bytes.Repeat([]byte{byte(i)}, int(size))),
		}
	}
	count := uint64(len(records))
	return &Chunklist{
		Header: Header{
			Magic:            Magic,
			HeaderSize:       HeaderSize,
			FileVersion:      FileVersion1,
			ChunkMethod:      ChunkMethodFixed,
			SignatureMethod:  SignatureRev1,
			ChunkCount:       count,
			ChunkTableOffset: HeaderSize,
			SignatureOffset:  HeaderSize + count*RecordSize,
		},
		Records: records,
	}
}

func mustMarshal(t *testing.T, list *Chunklist) []byte {
	t.Helper()
	data, err := list.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	return data
}

func TestMagicIsCNKL(t *testing.T) {
	if got := binary.LittleEndian.Uint32([]byte("CNKL")); got != Magic {
		t.Errorf("LittleEndian(\"CNKL\") = %#x, want Magic %#x", got, Magic)
	}
}

func TestEncodeLayout(t *testing.T) {
	list := sampleList(10, 10, 5)
	data := mustMarshal(t, list)

	if want := HeaderSize + 3*RecordSize; len(data) != want {
		t.Fatalf("encoded length = %d, want %d", len(data), want)
	}

	if string(data[0:4]) != "CNKL" {
		t.Errorf("magic bytes = %q, want %q", data[0:4], "CNKL")
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != HeaderSize {
		t.Errorf("header_size = %d, want %d", got, HeaderSize)
	}
	if data[8] != FileVersion1 || data[9] != ChunkMethodFixed || data[10] != byte(SignatureRev1) || data[11] != 0 {
		t.Errorf("version/method/sig/reserved = %v, want [1 1 1 0]", data[8:12])
	}
	if got := binary.LittleEndian.Uint64(data[12:20]); got != 3 {
		t.Errorf("chunk_count = %d, want 3", got)
	}
	if got := binary.LittleEndian.Uint64(data[20:28]); got != HeaderSize {
		t.Errorf("chunk_table_offset = %d, want %d", got, HeaderSize)
	}
	if got := binary.LittleEndian.Uint64(data[28:36]); got != HeaderSize+3*RecordSize {
		t.Errorf("signature_offset = %d, want %d", got, HeaderSize+3*RecordSize)
	}

	for i, record := range list.Records {
		offset := HeaderSize + i*RecordSize
		if got := binary.LittleEndian.Uint32(data[offset : offset+4]); got != record.Size {
			t.Errorf("record %d size = %d, want %d", i, got, record.Size)
		}
		if !bytes.Equal(data[offset+4:offset+RecordSize], record.Digest[:]) {
			t.Errorf("record %d digest bytes differ", i)
		}
	}
}

func TestDecodeRoundtrip(t *testing.T) {
	original := sampleList(4096, 4096, 17)
	decoded, err := Decode(mustMarshal(t, original))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.Header != original.Header {
		t.Errorf("header = %+v, want %+v", decoded.Header, original.Header)
	}
	if len(decoded.Records) != len(original.Records) {
		t.Fatalf("record count = %d, want %d", len(decoded.Records), len(original.Records))
	}
	for i := range original.Records {
		if decoded.Records[i] != original.Records[i] {
			t.Errorf("record %d = %+v, want %+v", i, decoded.Records[i], original.Records[i])
		}
	}
	if decoded.Signature != nil {
		t.Errorf("Signature = %d bytes, want none", len(decoded.Signature))
	}
}

func TestDecodeEmptyList(t *testing.T) {
	decoded, err := Decode(mustMarshal(t, sampleList()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Header.ChunkCount != 0 || len(decoded.Records) != 0 {
		t.Errorf("decoded %d chunks / %d records, want 0/0", decoded.Header.ChunkCount, len(decoded.Records))
	}
}

func TestUnmarshalBinary(t *testing.T) {
	original := sampleList(1, 2, 3)
	var decoded Chunklist
	if err := decoded.UnmarshalBinary(mustMarshal(t, original)); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if decoded.TotalSize() != 6 {
		t.Errorf("TotalSize = %d, want 6", decoded.TotalSize())
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data := mustMarshal(t, sampleList(8))
	copy(data[0:4], "LKNC")

	_, err := Decode(data)
	if !errors.Is(err, &FormatError{Kind: BadMagic}) {
		t.Fatalf("Decode error = %v, want BadMagic", err)
	}
}

func TestDecodeEveryPrefixFails(t *testing.T) {
	// Every strict prefix of a valid encoding must be rejected cleanly:
	// no panic, no partial result.
	data := mustMarshal(t, sampleList(3, 3))

	for length := 0; length < len(data); length++ {
		list, err := Decode(data[:length])
		if err == nil {
			t.Fatalf("Decode(%d bytes) succeeded, want error", length)
		}
		if list != nil {
			t.Errorf("Decode(%d bytes) returned a list alongside %v", length, err)
		}
		var formatError *FormatError
		if !errors.As(err, &formatError) || formatError.Kind != Truncated {
			t.Errorf("Decode(%d bytes) error = %v, want Truncated", length, err)
		}
	}
}

func TestDecodeRejectsOversizedChunkCount(t *testing.T) {
	for _, count := range []uint64{2, math.MaxUint64, math.MaxUint64 / RecordSize, math.MaxUint64/RecordSize + 1} {
		data := mustMarshal(t, sampleList(5))
		binary.LittleEndian.PutUint64(data[12:20], count)

		_, err := Decode(data)
		if !errors.Is(err, &FormatError{Kind: Truncated}) {
			t.Errorf("chunk_count %d: error = %v, want Truncated", count, err)
		}
	}
}

func TestDecodeMalformedOffsets(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(data []byte)
		kind   FormatErrorKind
	}{
		{
			name:   "header size below fixed size",
			mutate: func(data []byte) { binary.LittleEndian.PutUint32(data[4:8], 20) },
			kind:   Malformed,
		},
		{
			name:   "header size beyond input",
			mutate: func(data []byte) { binary.LittleEndian.PutUint32(data[4:8], 1<<20) },
			kind:   Truncated,
		},
		{
			name:   "table inside header",
			mutate: func(data []byte) { binary.LittleEndian.PutUint64(data[20:28], 8) },
			kind:   Malformed,
		},
		{
			name:   "table beyond input",
			mutate: func(data []byte) { binary.LittleEndian.PutUint64(data[20:28], math.MaxUint64) },
			kind:   Truncated,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data := mustMarshal(t, sampleList(5, 5))
			test.mutate(data)
			_, err := Decode(data)
			if !errors.Is(err, &FormatError{Kind: test.kind}) {
				t.Errorf("error = %v, want %s", err, test.kind)
			}
		})
	}
}

func TestDecodeIgnoresReservedByte(t *testing.T) {
	data := mustMarshal(t, sampleList(5))
	data[11] = 0xFF
	if _, err := Decode(data); err != nil {
		t.Fatalf("Decode with non-zero reserved byte: %v", err)
	}
}

func TestDecodeUnknownVersion(t *testing.T) {
	data := mustMarshal(t, sampleList(5))
	data[8] = 2

	list, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if list.Header.FileVersion != 2 {
		t.Errorf("FileVersion = %d, want 2", list.Header.FileVersion)
	}
	if err := CheckSupported(list.Header); !errors.Is(err, &FormatError{Kind: UnsupportedVersion}) {
		t.Errorf("CheckSupported = %v, want UnsupportedVersion", err)
	}
}

func TestSignatureBlockPreserved(t *testing.T) {
	list := sampleList(100, 50)
	list.Signature = bytes.Repeat([]byte{0xA5}, SignatureRev1.SignatureLength())

	data := mustMarshal(t, list)
	if want := HeaderSize + 2*RecordSize + 256; len(data) != want {
		t.Fatalf("encoded length = %d, want %d", len(data), want)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Signature, list.Signature) {
		t.Errorf("signature block not preserved (%d bytes)", len(decoded.Signature))
	}
	if again := mustMarshal(t, decoded); !bytes.Equal(again, data) {
		t.Error("re-encoding a decoded list changed its bytes")
	}
}

func TestWideHeaderRoundtrip(t *testing.T) {
	// A header larger than the fixed encoding, with the table after it.
	list := sampleList(7)
	list.Header.HeaderSize = 48
	list.Header.ChunkTableOffset = 48
	list.Header.SignatureOffset = 48 + RecordSize

	data := mustMarshal(t, list)
	if len(data) != 48+RecordSize {
		t.Fatalf("encoded length = %d, want %d", len(data), 48+RecordSize)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Records[0] != list.Records[0] {
		t.Error("record moved by wide header was not read back")
	}
}

func TestValidate(t *testing.T) {
	list := sampleList(1, 2)
	list.Header.ChunkCount = 5
	if err := list.Validate(); !errors.Is(err, &FormatError{Kind: Malformed}) {
		t.Errorf("Validate count mismatch = %v, want Malformed", err)
	}
	if _, err := list.MarshalBinary(); err == nil {
		t.Error("MarshalBinary of an invalid list succeeded")
	}

	list = sampleList(1)
	list.Header.Magic = 0
	if err := list.Validate(); !errors.Is(err, &FormatError{Kind: BadMagic}) {
		t.Errorf("Validate zero magic = %v, want BadMagic", err)
	}
}

func TestSignatureMethodNames(t *testing.T) {
	for _, method := range []SignatureMethod{SignatureNone, SignatureRev1, SignatureRev2} {
		parsed, err := ParseSignatureMethod(method.String())
		if err != nil {
			t.Fatalf("ParseSignatureMethod(%q): %v", method.String(), err)
		}
		if parsed != method {
			t.Errorf("ParseSignatureMethod(%q) = %d, want %d", method.String(), parsed, method)
		}
	}
	if _, err := ParseSignatureMethod("rsa"); err == nil {
		t.Error("ParseSignatureMethod(\"rsa\") succeeded")
	}
	if SignatureRev2.SignatureLength() != 808 {
		t.Errorf("rev2 signature length = %d, want 808", SignatureRev2.SignatureLength())
	}
}
