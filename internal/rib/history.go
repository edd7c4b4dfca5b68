package rib

import "github.com/ronak4/BGP-Router/internal/addr"

// AnnounceRecord is one accepted update, kept verbatim for replay.
type AnnounceRecord struct {
	Entry Entry
}

// WithdrawRecord is one accepted withdrawal: the (network, netmask) pairs
// named by the message, and the neighbor whose routes they remove.
type WithdrawRecord struct {
	Prefixes []addr.Prefix
	Source   addr.Address // the neighbor address that sent the withdrawal
}

// History is the append-only record of every accepted announcement and
// withdrawal, in arrival order. It is the sole source of truth for
// disaggregation: replaying it reproduces the RIB up to aggregation
// idempotence.
type History struct {
	announcements []AnnounceRecord
	withdrawals   []WithdrawRecord
}

// NewHistory returns an empty history log.
func NewHistory() *History {
	return &History{}
}

// AppendAnnounce records an accepted update. Called exactly once per
// handle_update invocation — the disaggregation replay path never re-logs.
func (h *History) AppendAnnounce(e Entry) {
	e.ASPath = cloneASPath(e.ASPath)
	h.announcements = append(h.announcements, AnnounceRecord{Entry: e})
}

// AppendWithdraw records an accepted withdrawal.
func (h *History) AppendWithdraw(prefixes []addr.Prefix, source addr.Address) {
	cp := make([]addr.Prefix, len(prefixes))
	copy(cp, prefixes)
	h.withdrawals = append(h.withdrawals, WithdrawRecord{Prefixes: cp, Source: source})
}

// Announcements returns the announcement log in arrival order. The caller
// must not mutate the returned entries.
func (h *History) Announcements() []AnnounceRecord {
	return h.announcements
}

// Withdrawals returns the withdrawal log in arrival order.
func (h *History) Withdrawals() []WithdrawRecord {
	return h.withdrawals
}
