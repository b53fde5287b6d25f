// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunklist

// Diff describes which chunks differ between two chunklists of the
// same file taken at different times. Records are matched by index,
// so the comparison is only meaningful when both lists were generated
// with the same nominal chunk size; ChunkingChanged flags when they
// were not.
type Diff struct {
	// Changed lists the indexes present in both lists whose size or
	// digest differ, in ascending order.
	Changed []uint64 `json:"changed"`

	// Added is the number of trailing records present only in the
	// newer list (the file grew).
	Added uint64 `json:"added"`

	// Removed is the number of trailing records present only in the
	// older list (the file shrank).
	Removed uint64 `json:"removed"`

	// ChunkingChanged is true when the first records of the two lists
	// have different sizes, which means the lists were generated with
	// different nominal chunk sizes. Every index-wise difference is
	// then expected and says nothing about the content.
	ChunkingChanged bool `json:"chunking_changed"`
}

// Identical reports whether the two lists describe the same content.
func (d *Diff) Identical() bool {
	return len(d.Changed) == 0 && d.Added == 0 && d.Removed == 0 && !d.ChunkingChanged
}

// Compare matches the records of older and newer by index.
func Compare(older, newer *Chunklist) *Diff {
	diff := &Diff{Changed: []uint64{}}

	common := min(len(older.Records), len(newer.Records))
	if common > 0 && older.Records[0].Size != newer.Records[0].Size &&
		len(older.Records) > 1 && len(newer.Records) > 1 {
		// A single-record list is smaller than one nominal chunk, so
		// its first size is the file length, not the chunk size.
		diff.ChunkingChanged = true
	}

	for i := range common {
		if older.Records[i] != newer.Records[i] {
			diff.Changed = append(diff.Changed, uint64(i))
		}
	}

	switch {
	case len(newer.Records) > common:
		diff.Added = uint64(len(newer.Records) - common)
	case len(older.Records) > common:
		diff.Removed = uint64(len(older.Records) - common)
	}
	return diff
}
