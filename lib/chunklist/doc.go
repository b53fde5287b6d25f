// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunklist reads, writes, generates, and verifies chunklist
// manifests: a fixed-layout binary file that pairs consecutive
// fixed-size slices of a target file with the SHA-256 digest of each
// slice.
//
// The package is organized in layers, each usable independently:
//
//   - Format: a 36-byte little-endian header ("CNKL" magic, version,
//     chunk method, signature method, chunk count, table and signature
//     offsets) followed by ChunkCount 36-byte records (uint32 size +
//     32-byte digest). [Decode] validates every length against the
//     input before trusting it, so a hostile chunk count cannot cause
//     an out-of-range read or an oversized allocation.
//
//   - Planning: [Plan] computes chunk boundaries from a file size and
//     a nominal chunk size. The last chunk holds the remainder, or a
//     full nominal chunk when the size is an exact multiple. An empty
//     file has an empty plan and a zero-chunk manifest.
//
//   - Generation: [Generate] reads the source once, sequentially,
//     hashing each planned chunk through a [Digester]. The result is an
//     in-memory [Chunklist]; persisting it is a separate step
//     ([WriteFile]) that writes to a temporary file and renames, so a
//     failed run never leaves a partial manifest behind.
//
//   - Verification: [Verify] re-reads the source in record order and
//     stops at the first chunk whose digest differs. A digest mismatch
//     is a [Result] with StatusFailed, not an error. Read failures,
//     including a source shorter than the manifest describes, are
//     [*IOError]. Data beyond the last record fails verification at the
//     last chunk index with ReasonTrailingData.
//
//   - Fingerprints: [Fingerprint] and [DigestRoot] give short BLAKE3
//     identifiers for a manifest and its digest table, used by the CLI
//     for display. They are never stored in the file.
//
// The signature method and any trailing signature block are carried
// through decode and encode unchanged. Nothing in this package checks
// signatures.
package chunklist
