package rib

import "github.com/ronak4/BGP-Router/internal/addr"

// RIB bundles the forwarding table and its history log: the unit the
// update/withdraw handlers mutate. It has a single owner — the event loop
// goroutine in internal/router — and is never locked.
type RIB struct {
	Table   *Table
	History *History
}

// New returns an empty RIB.
func New() *RIB {
	return &RIB{Table: NewTable(), History: NewHistory()}
}

// Announce implements handle_update steps 2-4: append the entry to the
// table and to history, then aggregate.
func (r *RIB) Announce(e Entry) {
	r.Table.Add(e)
	r.History.AppendAnnounce(e)
	Aggregate(r.Table)
}

// Withdraw implements handle_withdraw: record the withdrawal in history
// first, then disaggregate. Disaggregate clears the table, replays every
// announcement unaggregated, then replays every withdrawal — including the
// one just appended — against that unaggregated table before its own
// terminal Aggregate call. Appending before disaggregating is what lets a
// withdrawal undo a merge that depended on the prefix being withdrawn: the
// withdrawn half is removed from the table while it is still a standalone
// entry, before the merge that would have hidden it ever re-forms.
func (r *RIB) Withdraw(prefixes []addr.Prefix, source addr.Address) {
	r.History.AppendWithdraw(prefixes, source)
	Disaggregate(r.Table, r.History)
}

// Select is a convenience forward to Select(r.Table, d).
func (r *RIB) Select(d addr.Address) (Entry, bool) {
	return Select(r.Table, d)
}

// Digest is a convenience forward to Digest(r.Table).
func (r *RIB) Digest() uint64 {
	return Digest(r.Table)
}
