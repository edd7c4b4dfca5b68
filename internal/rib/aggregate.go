package rib

import (
	"sort"

	"github.com/ronak4/BGP-Router/internal/addr"
	"github.com/ronak4/BGP-Router/internal/telemetry"
)

// Aggregate merges adjacent, attribute-identical entries into their common
// super-prefix until a full pass performs no merges — the aggregation fixed
// point. Disaggregation (replaying history from scratch) is the mechanism
// by which a withdrawal undoes a merge that depended on the withdrawn half;
// Aggregate itself never needs to invert a merge, only repeat until stable.
func Aggregate(t *Table) {
	entries := append([]Entry(nil), t.Entries()...)
	for {
		sortByNetworkThenLength(entries)
		next, merges := mergeAdjacentPass(entries)
		entries = next
		if merges == 0 {
			break
		}
		telemetry.AggregationsTotal.Add(float64(merges))
	}
	t.Set(entries)
}

func sortByNetworkThenLength(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Prefix.Network != entries[j].Prefix.Network {
			return entries[i].Prefix.Network < entries[j].Prefix.Network
		}
		return entries[i].Prefix.Length < entries[j].Prefix.Length
	})
}

// mergeAdjacentPass performs one left-to-right scan, merging any adjacent
// mergeable pair it finds. It reports how many merges happened so the
// caller knows both whether another pass (after re-sorting) might cascade
// and how many pairs to credit to the aggregation counter.
func mergeAdjacentPass(entries []Entry) ([]Entry, int) {
	out := make([]Entry, 0, len(entries))
	merges := 0
	for i := 0; i < len(entries); i++ {
		if i+1 < len(entries) && mergeable(entries[i], entries[i+1]) {
			merged := entries[i]
			merged.Prefix = entries[i].Prefix.Supernet()
			out = append(out, merged)
			merges++
			i++ // consume the sibling we just folded in
			continue
		}
		out = append(out, entries[i])
	}
	return out, merges
}

func mergeable(a, b Entry) bool {
	return a.Prefix.Length == b.Prefix.Length && a.Prefix.Mergeable(b.Prefix) && a.AttributesEqual(b)
}

// Disaggregate rebuilds the table from history: clear it, re-apply every
// Announce in arrival order without aggregating, re-apply every Withdraw in
// arrival order without aggregating, then aggregate once. It does not
// append to history itself — history is already the source these replays
// come from.
func Disaggregate(t *Table, h *History) {
	t.Reset()
	for _, rec := range h.Announcements() {
		t.Add(rec.Entry)
	}
	for _, rec := range h.Withdrawals() {
		nextHop := addr.PeerAddr(rec.Source)
		for _, p := range rec.Prefixes {
			t.RemovePrefixFromNextHop(p, nextHop)
		}
	}
	Aggregate(t)
}
