package rib

import "github.com/ronak4/BGP-Router/internal/addr"

// Table is the ordered multiset of route entries that make up the
// forwarding table. It carries no uniqueness invariant beyond the
// aggregation fixed point: two entries may legitimately share a prefix if
// they differ in attributes or next-hop. It is mutated only by the
// update/withdraw handlers and the aggregation engine (internal/rib is the
// single owner; see the event loop in internal/router for why no locking
// is needed).
type Table struct {
	entries []Entry
}

// NewTable returns an empty forwarding table.
func NewTable() *Table {
	return &Table{}
}

// Add appends an entry to the table.
func (t *Table) Add(e Entry) {
	e.ASPath = cloneASPath(e.ASPath)
	t.entries = append(t.entries, e)
}

// Entries returns the current table contents. The caller must not mutate
// the returned slice; use Add/RemoveWhere/Reset to change the table.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Len reports the current table size.
func (t *Table) Len() int {
	return len(t.entries)
}

// Reset clears the table, used by disaggregation before replay.
func (t *Table) Reset() {
	t.entries = nil
}

// RemoveWhere deletes every entry for which match returns true, preserving
// relative order of the rest, and reports how many it deleted.
func (t *Table) RemoveWhere(match func(Entry) bool) int {
	kept := t.entries[:0]
	removed := 0
	for _, e := range t.entries {
		if match(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	t.entries = kept
	return removed
}

// RemovePrefixFromNextHop deletes every entry whose prefix equals p and
// whose next_hop equals nextHop — the withdraw handler's removal rule.
func (t *Table) RemovePrefixFromNextHop(p addr.Prefix, nextHop addr.Address) int {
	return t.RemoveWhere(func(e Entry) bool {
		return e.Prefix.Equal(p) && e.NextHop == nextHop
	})
}

// Set replaces the table contents wholesale, used by the aggregation
// engine after a merge pass.
func (t *Table) Set(entries []Entry) {
	t.entries = entries
}
