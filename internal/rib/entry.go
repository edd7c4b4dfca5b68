// Package rib implements the route information base: the forwarding table,
// its append-only history log, the adjacency-based aggregation engine, and
// the longest-prefix-match best-path selector. It is grounded on the
// Route/BGPPath shapes of a real BGP route (the teacher's
// internal/route/routers package) narrowed to the attribute set this model
// carries.
package rib

import (
	"fmt"

	"github.com/ronak4/BGP-Router/internal/addr"
)

// Origin classifies how a route entered the network, strictly ordered
// IGP > EGP > UNK for tie-breaking.
type Origin string

const (
	OriginIGP Origin = "IGP"
	OriginEGP Origin = "EGP"
	OriginUNK Origin = "UNK"
)

// rank returns a comparable score for the origin decision-ladder rule:
// higher is better.
func (o Origin) rank() int {
	switch o {
	case OriginIGP:
		return 2
	case OriginEGP:
		return 1
	default:
		return 0
	}
}

// Better reports whether o is preferred over other by the origin
// decision-ladder rule (IGP > EGP > UNK).
func (o Origin) Better(other Origin) bool {
	return o.rank() > other.rank()
}

// Entry is one row of the forwarding table: a prefix and the attributes
// that came with the announcement that installed it.
type Entry struct {
	Prefix     addr.Prefix
	NextHop    addr.Address
	LocalPref  int
	ASPath     []int
	SelfOrigin bool
	Origin     Origin
}

// AttributesEqual reports whether two entries are attribute-identical per
// the RIB's definition: same next_hop, local_pref, as_path, self_origin,
// and origin. Prefix is deliberately excluded — it is compared separately
// by the aggregation engine.
func (e Entry) AttributesEqual(o Entry) bool {
	if e.NextHop != o.NextHop || e.LocalPref != o.LocalPref || e.SelfOrigin != o.SelfOrigin || e.Origin != o.Origin {
		return false
	}
	if len(e.ASPath) != len(o.ASPath) {
		return false
	}
	for i := range e.ASPath {
		if e.ASPath[i] != o.ASPath[i] {
			return false
		}
	}
	return true
}

// String renders an entry for logging.
func (e Entry) String() string {
	return fmt.Sprintf("%s via %s (local_pref=%d self=%v as_path=%v origin=%s)",
		e.Prefix, addr.ToDotted(e.NextHop), e.LocalPref, e.SelfOrigin, e.ASPath, e.Origin)
}

// cloneASPath returns a defensive copy so mutating the caller's slice after
// the entry is stored can never retroactively change RIB state.
func cloneASPath(p []int) []int {
	if len(p) == 0 {
		return nil
	}
	out := make([]int, len(p))
	copy(out, p)
	return out
}
