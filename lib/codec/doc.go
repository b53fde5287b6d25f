// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration used
// by cnkl's machine-readable output. cnkl only writes CBOR; consumers
// decode it with any RFC 8949 decoder.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same chunklist summary always produces identical bytes, so CBOR
// inspect output can itself be hashed and compared.
//
//	data, err := codec.Marshal(summary)
//	err = codec.NewEncoder(os.Stdout).Encode(summary)
//
// Types that implement encoding.TextMarshaler (chunk digests, status
// and reason enums) encode as CBOR text strings, matching their JSON
// form. Struct fields use `json` tags; fxamacker/cbor reads them as a
// fallback when `cbor` tags are absent, so one tag names a field in
// both formats.
package codec
