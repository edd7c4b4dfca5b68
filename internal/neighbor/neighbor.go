// Package neighbor holds the fixed-at-startup set of routers this AS talks
// to: their addresses and commercial relationships.
package neighbor

import (
	"fmt"

	"github.com/ronak4/BGP-Router/internal/addr"
)

// Relation classifies a neighbor's commercial role, which governs the
// export policy applied when re-advertising routes and forwarding data.
type Relation int

const (
	Customer Relation = iota
	Peer
	Provider
)

func (r Relation) String() string {
	switch r {
	case Customer:
		return "cust"
	case Peer:
		return "peer"
	case Provider:
		return "prov"
	default:
		return "unknown"
	}
}

// ParseRelation accepts the tokens used on the command line and in config
// descriptors: "cust", "peer", "prov".
func ParseRelation(s string) (Relation, error) {
	switch s {
	case "cust":
		return Customer, nil
	case "peer":
		return Peer, nil
	case "prov":
		return Provider, nil
	default:
		return 0, fmt.Errorf("neighbor: unknown relation %q", s)
	}
}

// Neighbor is one entry in the registry. The transport handle used to
// reach it (internal/transport) is owned by the router, not the registry —
// the registry only needs to answer "who is this address" and "what is our
// relationship with them".
type Neighbor struct {
	Address  addr.Address
	Relation Relation
}

// SelfAddr is the address this router presents on the link to Neighbor.
func (n Neighbor) SelfAddr() addr.Address { return addr.SelfAddr(n.Address) }

// PeerAddr is the address Neighbor presents to this router — the next_hop
// recorded for routes learned from it.
func (n Neighbor) PeerAddr() addr.Address { return addr.PeerAddr(n.Address) }

// Registry is the fixed-at-startup collection of neighbors, keyed by
// neighbor address. Neighbors are never added or removed after startup.
type Registry struct {
	byAddr map[addr.Address]*Neighbor
	order  []addr.Address // preserves configuration order for deterministic iteration
}

// NewRegistry builds a Registry from the neighbors configured at startup.
func NewRegistry(neighbors []Neighbor) *Registry {
	r := &Registry{byAddr: make(map[addr.Address]*Neighbor, len(neighbors))}
	for i := range neighbors {
		n := neighbors[i]
		r.byAddr[n.Address] = &n
		r.order = append(r.order, n.Address)
	}
	return r
}

// Lookup returns the Neighbor at address a, or false if a is unknown.
func (r *Registry) Lookup(a addr.Address) (*Neighbor, bool) {
	n, ok := r.byAddr[a]
	return n, ok
}

// ByPeerAddr finds the neighbor whose derived peer address equals p. Used
// to map a RouteEntry's next_hop back to the neighbor that owns it.
func (r *Registry) ByPeerAddr(p addr.Address) (*Neighbor, bool) {
	for _, a := range r.order {
		n := r.byAddr[a]
		if n.PeerAddr() == p {
			return n, true
		}
	}
	return nil, false
}

// All returns every neighbor in configuration order.
func (r *Registry) All() []*Neighbor {
	out := make([]*Neighbor, 0, len(r.order))
	for _, a := range r.order {
		out = append(out, r.byAddr[a])
	}
	return out
}
