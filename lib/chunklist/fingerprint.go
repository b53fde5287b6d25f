// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// domainKey is a 32-byte key for BLAKE3 keyed hashing. Separate keys
// keep a manifest fingerprint from ever colliding with a digest-tree
// node over the same bytes.
type domainKey [32]byte

// Domain keys are the ASCII domain name, zero-padded. Changing one
// changes every fingerprint in that domain.
var (
	manifestDomainKey = domainKey{
		'c', 'h', 'u', 'n', 'k', 'l', 'i', 's', 't', '.', 'm', 'a', 'n', 'i', 'f', 'e',
		's', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	treeDomainKey = domainKey{
		'c', 'h', 'u', 'n', 'k', 'l', 'i', 's', 't', '.', 't', 'r', 'e', 'e', 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Fingerprint returns the manifest-domain BLAKE3 hash of a chunklist's
// encoded bytes. Two files with the same fingerprint are
// byte-identical manifests.
func Fingerprint(encoded []byte) Digest {
	return keyedHash(manifestDomainKey, encoded)
}

// FormatFingerprint returns the short display form of a fingerprint:
// "cnkl-" followed by the first 12 hex characters.
func FormatFingerprint(fingerprint Digest) string {
	return "cnkl-" + hex.EncodeToString(fingerprint[:6])
}

// DigestRoot returns a binary Merkle root over the record digests, in
// record order. Two manifests with the same root describe the same
// content under the same chunking regardless of header differences
// such as the signature method. A zero-chunk list has a zero root.
//
// Pairs are hashed left||right in the tree domain. An odd node at the
// end of a level is promoted unhashed rather than duplicated, so a
// list is never given the same root as its own prefix.
func DigestRoot(records []Record) Digest {
	if len(records) == 0 {
		return Digest{}
	}

	level := make([]Digest, len(records))
	for i := range records {
		level[i] = records[i].Digest
	}
	if len(level) == 1 {
		return level[0]
	}

	// One keyed hasher reused via Reset for every pair.
	hasher, err := blake3.NewKeyed(treeDomainKey[:])
	if err != nil {
		panic("chunklist: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	var combined [2 * DigestSize]byte

	for len(level) > 1 {
		nextLength := (len(level) + 1) / 2
		next := make([]Digest, nextLength)
		for i := 0; i < len(level)-1; i += 2 {
			copy(combined[:DigestSize], level[i][:])
			copy(combined[DigestSize:], level[i+1][:])
			hasher.Reset()
			hasher.Write(combined[:])
			copy(next[i/2][:], hasher.Sum(nil))
		}
		if len(level)%2 == 1 {
			next[nextLength-1] = level[len(level)-1]
		}
		level = next
	}
	return level[0]
}

// BLAKE3 is a [Digester] over unkeyed BLAKE3. It is not the version 1
// chunk digest; tests and tools use it where a fast non-SHA digester
// is wanted.
var BLAKE3 Digester = DigesterFunc(func(data []byte) Digest {
	return blake3.Sum256(data)
})

func keyedHash(key domainKey, data []byte) Digest {
	// NewKeyed only fails for a key that is not 32 bytes, which
	// domainKey rules out.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("chunklist: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}
