// Package router implements the update/withdraw/data/dump handlers and the
// customer/peer/provider export policy that ties the neighbor registry,
// the RIB, and the transport together. The Router is the single owner of
// all mutable core state and runs from one goroutine, so none of it needs
// locking.
package router

import (
	"github.com/ronak4/BGP-Router/internal/addr"
	"github.com/ronak4/BGP-Router/internal/neighbor"
	"github.com/ronak4/BGP-Router/internal/rib"
	"github.com/ronak4/BGP-Router/internal/transport"
)

// KernelSyncer is the optional kernel-FIB hook: when non-nil, the router
// passes it every table entry after each accepted update or withdraw, and
// every withdrawn prefix, so it can mirror them into the real Linux routing
// table. It is never required for the
// simulated data plane to behave correctly.
type KernelSyncer interface {
	SyncBestPath(p addr.Prefix, nextHop addr.Address) error
	Withdraw(p addr.Prefix) error
}

// Router is the BGP-like reactor: one RIB, one neighbor registry, one
// transport, operated from a single goroutine.
type Router struct {
	ASN        int
	RIB        *rib.RIB
	Registry   *neighbor.Registry
	Transport  transport.Transport
	KernelSync KernelSyncer
}

// New builds a Router. asn is this AS's own number; registry and
// transport.Transport must already be initialized for the full neighbor
// set named at startup.
func New(asn int, registry *neighbor.Registry, t transport.Transport) *Router {
	return &Router{
		ASN:       asn,
		RIB:       rib.New(),
		Registry:  registry,
		Transport: t,
	}
}
