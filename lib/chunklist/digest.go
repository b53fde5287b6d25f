// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DigestSize is the byte length of a chunk digest.
const DigestSize = 32

// Digest is the digest of one chunk's raw bytes.
type Digest [DigestSize]byte

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText encodes the digest as hex so JSON, YAML, and CBOR
// output show a readable string rather than an array of numbers.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a 64-character hex digest.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDigest parses a 64-character hex string into a Digest.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing chunk digest: %w", err)
	}
	if len(decoded) != DigestSize {
		return digest, fmt.Errorf("chunk digest is %d bytes, want %d", len(decoded), DigestSize)
	}
	copy(digest[:], decoded)
	return digest, nil
}

// Digester computes the digest of a chunk. Implementations must be
// pure: identical input always yields the identical digest.
type Digester interface {
	Digest(data []byte) Digest
}

// DigesterFunc adapts a plain function to [Digester].
type DigesterFunc func(data []byte) Digest

// Digest calls f(data).
func (f DigesterFunc) Digest(data []byte) Digest { return f(data) }

// SHA256 is the digester the version 1 format is defined with.
var SHA256 Digester = DigesterFunc(func(data []byte) Digest {
	return sha256.Sum256(data)
})

func digesterOrDefault(digester Digester) Digester {
	if digester == nil {
		return SHA256
	}
	return digester
}
