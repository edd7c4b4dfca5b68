package rib

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// Digest folds the sorted RIB into a single 64-bit hash, the same
// technique the teacher's bird route parser uses to detect whether a
// polled route table changed without a deep comparison. It is an internal
// diagnostic — not part of the wire payload — used by the update and
// withdraw handlers' logging and by tests comparing two RIBs cheaply.
func Digest(t *Table) uint64 {
	entries := append([]Entry(nil), t.Entries()...)
	sortByNetworkThenLength(entries)

	h := xxhash.New()
	var buf [4]byte
	writeU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}

	for _, e := range entries {
		writeU32(uint32(e.Prefix.Network))
		writeU32(uint32(e.Prefix.Length))
		writeU32(uint32(e.NextHop))
		writeU32(uint32(e.LocalPref))
		for _, as := range e.ASPath {
			writeU32(uint32(as))
		}
		if e.SelfOrigin {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		h.Write([]byte(e.Origin))
	}
	return h.Sum64()
}
