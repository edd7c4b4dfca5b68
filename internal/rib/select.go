package rib

import (
	"fmt"

	"github.com/ronak4/BGP-Router/internal/addr"
)

// Select performs longest-prefix match across the table for destination d,
// breaking ties among equally long matches with the BGP decision ladder.
// It reports (Entry{}, false) if nothing in the table covers d.
func Select(t *Table, d addr.Address) (Entry, bool) {
	var candidates []Entry
	bestLen := -1
	for _, e := range t.Entries() {
		if !e.Prefix.Contains(d) {
			continue
		}
		switch {
		case e.Prefix.Length > bestLen:
			bestLen = e.Prefix.Length
			candidates = []Entry{e}
		case e.Prefix.Length == bestLen:
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return Entry{}, false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}
	return decide(candidates), true
}

// decide applies the decision ladder across candidates that all share the
// same (longest) match length.
func decide(candidates []Entry) Entry {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if preferred(c, best) {
			best = c
		}
	}
	return best
}

// preferred reports whether a is strictly preferred over b by the decision
// ladder, applied in order: local_pref, self_origin, as_path length,
// origin, next_hop.
func preferred(a, b Entry) bool {
	if a.LocalPref != b.LocalPref {
		return a.LocalPref > b.LocalPref
	}
	if a.SelfOrigin != b.SelfOrigin {
		return a.SelfOrigin
	}
	if len(a.ASPath) != len(b.ASPath) {
		return len(a.ASPath) < len(b.ASPath)
	}
	if a.Origin != b.Origin {
		return a.Origin.Better(b.Origin)
	}
	if a.NextHop != b.NextHop {
		return a.NextHop < b.NextHop
	}
	// Two RIB entries identical across every ladder criterion including
	// next_hop would have been folded together by aggregation; reaching
	// this point means that fixed point was violated upstream.
	panic(fmt.Sprintf("rib: decision ladder found no distinguishing criterion between %s and %s", a, b))
}
