// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strconv"
)

// Fingerprint digests the inputs and the resulting seats. Identical inputs,
// in any row order, give identical fingerprints.
func Fingerprint(table PopulationTable, alloc Allocation) string {
	h := sha256.New()
	write := fieldWriter(h)

	write("year", table.Year())
	write("alpha", strconv.FormatFloat(alloc.Params.Alpha, 'g', -1, 64),
		"house", strconv.Itoa(alloc.Params.HouseSize),
		"floor", strconv.Itoa(alloc.Params.Floor))

	for _, s := range table.states {
		write("pop", s.Name, strconv.FormatInt(s.Population, 10))
	}
	for _, r := range alloc.Rows {
		write("seat", r.State, strconv.Itoa(r.Seats), strconv.FormatFloat(r.Quota, 'g', -1, 64))
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Digest identifies the table's contents: year label, names, and
// populations. Two tables sharing a year label but not their populations
// have different digests.
func (t PopulationTable) Digest() string {
	h := sha256.New()
	write := fieldWriter(h)

	write("year", t.year)
	for _, s := range t.states {
		write("pop", s.Name, strconv.FormatInt(s.Population, 10))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func fieldWriter(h hash.Hash) func(parts ...string) {
	return func(parts ...string) {
		for _, p := range parts {
			h.Write([]byte(p))
			h.Write([]byte{0})
		}
		h.Write([]byte{'\n'})
	}
}
