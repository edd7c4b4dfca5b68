package router

import (
	"encoding/json"

	"github.com/ronak4/BGP-Router/internal/addr"
	"github.com/ronak4/BGP-Router/internal/neighbor"
	"github.com/ronak4/BGP-Router/internal/rib"
	"github.com/ronak4/BGP-Router/internal/telemetry"
	"github.com/ronak4/BGP-Router/internal/wire"
	"github.com/ronak4/BGP-Router/pkg/logging"
)

// Dispatch decodes a raw frame, drops it if it is malformed or comes from
// an unknown neighbor, and otherwise demultiplexes it by type to the
// matching handler. Every path here is non-fatal: a handler error is logged
// and the loop continues.
func (r *Router) Dispatch(raw []byte) {
	f, err := wire.Decode(raw)
	if err != nil {
		logging.Warnf("dropping malformed frame: %v", err)
		telemetry.DroppedTotal.WithLabelValues("malformed").Inc()
		return
	}

	srcAddr, err := addr.ToInt(f.Src)
	if err != nil {
		logging.Warnf("dropping frame with malformed src %q: %v", f.Src, err)
		telemetry.DroppedTotal.WithLabelValues("malformed").Inc()
		return
	}
	srcNeighbor, ok := r.Registry.Lookup(srcAddr)
	if !ok {
		logging.Warnf("dropping frame from unknown neighbor %s", f.Src)
		telemetry.DroppedTotal.WithLabelValues("unknown_source").Inc()
		return
	}

	switch f.Type {
	case wire.Update:
		r.handleUpdate(f, srcNeighbor)
	case wire.Withdraw:
		r.handleWithdraw(f, srcNeighbor)
	case wire.Data:
		r.handleData(f, srcNeighbor)
	case wire.Dump:
		r.handleDump(f, srcNeighbor)
	case wire.Handshake:
		logging.Debugf("handshake from %s", f.Src)
	default:
		// wire.Decode already rejects unknown types; what lands here is a
		// table or no route frame, which this router only ever sends.
		logging.Warnf("dropping frame of unhandled type %q", f.Type)
		telemetry.DroppedTotal.WithLabelValues("malformed").Inc()
	}
}

// handleUpdate installs the announced route, then re-advertises it to
// every neighbor the export policy permits.
func (r *Router) handleUpdate(f wire.Frame, src *neighbor.Neighbor) {
	p, err := wire.DecodeUpdate(f.Msg)
	if err != nil {
		logging.Warnf("dropping malformed update from %s: %v", f.Src, err)
		telemetry.DroppedTotal.WithLabelValues("malformed").Inc()
		return
	}

	srcAddr, _ := addr.ToInt(f.Src) // already validated by Dispatch
	prefix, _ := addr.NewPrefix(p.Network, p.Netmask)

	entry := rib.Entry{
		Prefix:     prefix,
		NextHop:    addr.PeerAddr(srcAddr),
		LocalPref:  p.LocalPref,
		ASPath:     p.ASPath,
		SelfOrigin: p.SelfOrigin,
		Origin:     rib.Origin(p.Origin),
	}

	r.RIB.Announce(entry)

	telemetry.UpdatesTotal.WithLabelValues(f.Src).Inc()
	telemetry.RIBEntries.Set(float64(r.RIB.Table.Len()))
	logging.Infof("accepted update %s from %s, digest=%x", prefix, f.Src, r.RIB.Digest())
	r.syncKernel()

	outPayload := wire.OutgoingUpdatePayload{
		Network: p.Network,
		Netmask: p.Netmask,
		ASPath:  append([]int{r.ASN}, p.ASPath...),
	}
	r.forward(src, wire.Update, outPayload)
}

// handleWithdraw removes the named prefixes from the RIB and re-advertises
// the withdrawal to every neighbor the export policy permits.
func (r *Router) handleWithdraw(f wire.Frame, src *neighbor.Neighbor) {
	entries, err := wire.DecodeWithdraw(f.Msg)
	if err != nil {
		logging.Warnf("dropping malformed withdraw from %s: %v", f.Src, err)
		telemetry.DroppedTotal.WithLabelValues("malformed").Inc()
		return
	}

	prefixes := make([]addr.Prefix, 0, len(entries))
	for _, e := range entries {
		p, _ := addr.NewPrefix(e.Network, e.Netmask) // already validated
		prefixes = append(prefixes, p)
	}

	r.RIB.Withdraw(prefixes, src.Address)

	telemetry.WithdrawalsTotal.WithLabelValues(f.Src).Inc()
	telemetry.RIBEntries.Set(float64(r.RIB.Table.Len()))
	logging.Infof("accepted withdraw of %d prefix(es) from %s, digest=%x", len(prefixes), f.Src, r.RIB.Digest())

	if r.KernelSync != nil {
		for _, p := range prefixes {
			if err := r.KernelSync.Withdraw(p); err != nil {
				logging.Errorf("kernel sync withdraw of %s failed: %v", p, err)
			}
		}
	}
	r.syncKernel()

	// Forwarded verbatim — the withdrawal carries no router-owned
	// attributes to strip or rewrite, unlike an update.
	r.forwardRaw(src, wire.Withdraw, f.Msg)
}

// handleData resolves the best path to the frame's destination and relays
// the unmodified datagram to that path's next hop, subject to the
// data-plane no-transit policy. A destination with no matching route gets
// a no-route reply instead.
func (r *Router) handleData(f wire.Frame, src *neighbor.Neighbor) {
	dst, err := addr.ToInt(f.Dst)
	if err != nil {
		logging.Warnf("dropping data frame with malformed dst %q: %v", f.Dst, err)
		telemetry.DroppedTotal.WithLabelValues("malformed").Inc()
		return
	}

	entry, ok := r.RIB.Select(dst)
	if !ok {
		telemetry.BestPathLookupsTotal.WithLabelValues("miss").Inc()
		r.replyNoRoute(f, src)
		return
	}
	telemetry.BestPathLookupsTotal.WithLabelValues("hit").Inc()

	nextHopNeighbor, ok := r.Registry.ByPeerAddr(entry.NextHop)
	if !ok {
		logging.Errorf("best path for %s has next_hop %s with no matching neighbor", f.Dst, addr.ToDotted(entry.NextHop))
		telemetry.DroppedTotal.WithLabelValues("policy").Inc()
		return
	}

	if !dataForwardAllowed(src.Relation, nextHopNeighbor.Relation) {
		telemetry.DroppedTotal.WithLabelValues("policy").Inc()
		return
	}

	// Forward the original datagram unmodified — the frame's own src/dst
	// already names the ultimate source/destination; only the transport
	// socket it travels over changes at each hop.
	original, encErr := json.Marshal(f)
	if encErr != nil {
		logging.Errorf("re-encoding data frame for forwarding failed: %v", encErr)
		return
	}
	if err := r.Transport.Send(entry.NextHop, original); err != nil {
		logging.Errorf("sending data frame to %s failed: %v", addr.ToDotted(entry.NextHop), err)
		telemetry.DroppedTotal.WithLabelValues("transport").Inc()
	}
}

// handleDump replies to the requester with a snapshot of the current
// forwarding table.
func (r *Router) handleDump(f wire.Frame, src *neighbor.Neighbor) {
	entries := r.RIB.Table.Entries()
	payload := make([]wire.TableEntry, 0, len(entries))
	for _, e := range entries {
		payload = append(payload, wire.TableEntry{
			Network:    addr.ToDotted(e.Prefix.Network),
			Netmask:    e.Prefix.Netmask(),
			Peer:       addr.ToDotted(e.NextHop),
			LocalPref:  e.LocalPref,
			ASPath:     e.ASPath,
			SelfOrigin: e.SelfOrigin,
			Origin:     string(e.Origin),
		})
	}

	requester, err := addr.ToInt(f.Src)
	if err != nil {
		return // already validated by Dispatch; unreachable
	}
	r.reply(src, requester, wire.Table, payload)
}

// replyNoRoute tells the sender of a data frame that no route covers its
// destination.
func (r *Router) replyNoRoute(f wire.Frame, src *neighbor.Neighbor) {
	requester, err := addr.ToInt(f.Src)
	if err != nil {
		return
	}
	r.reply(src, requester, wire.NoRoute, wire.EmptyPayload{})
	telemetry.DroppedTotal.WithLabelValues("no_route").Inc()
}

// syncKernel mirrors every current table entry into the real FIB, when
// kernel sync is enabled. Entries are synced in table order without the
// decision ladder, so where several entries share a prefix the kernel keeps
// the next hop of the last one synced. SyncBestPath is idempotent for an unchanged
// (prefix, next_hop) pair, so re-syncing the whole table on every RIB
// mutation is cheap and keeps the kernel consistent even across merges the
// aggregation engine performs without the router's direct involvement.
func (r *Router) syncKernel() {
	if r.KernelSync == nil {
		return
	}
	for _, e := range r.RIB.Table.Entries() {
		if err := r.KernelSync.SyncBestPath(e.Prefix, e.NextHop); err != nil {
			logging.Errorf("kernel sync of %s failed: %v", e.Prefix, err)
		}
	}
}

// reply sends a frame to requester over src's socket, with our own
// self-address on that link as the frame's src.
func (r *Router) reply(src *neighbor.Neighbor, requester addr.Address, typ wire.Type, payload any) {
	out, err := wire.Encode(src.SelfAddr(), requester, typ, payload)
	if err != nil {
		logging.Errorf("encoding %s reply failed: %v", typ, err)
		return
	}
	if err := r.Transport.Send(src.Address, out); err != nil {
		logging.Errorf("sending %s reply to %s failed: %v", typ, addr.ToDotted(src.Address), err)
		telemetry.DroppedTotal.WithLabelValues("transport").Inc()
	}
}

// forward re-advertises payload to every neighbor the export policy
// permits, other than source itself.
func (r *Router) forward(source *neighbor.Neighbor, typ wire.Type, payload any) {
	for _, n := range r.Registry.All() {
		if n.Address == source.Address {
			continue
		}
		if !exportAllowed(source.Relation, n.Relation) {
			continue
		}
		out, err := wire.Encode(n.SelfAddr(), n.PeerAddr(), typ, payload)
		if err != nil {
			logging.Errorf("encoding %s for %s failed: %v", typ, addr.ToDotted(n.Address), err)
			continue
		}
		if err := r.Transport.Send(n.Address, out); err != nil {
			logging.Errorf("forwarding %s to %s failed: %v", typ, addr.ToDotted(n.Address), err)
			telemetry.DroppedTotal.WithLabelValues("transport").Inc()
		}
	}
}

// forwardRaw is forward, but for a message that must be re-advertised
// byte-for-byte rather than re-encoded from a rebuilt payload.
func (r *Router) forwardRaw(source *neighbor.Neighbor, typ wire.Type, msg json.RawMessage) {
	for _, n := range r.Registry.All() {
		if n.Address == source.Address {
			continue
		}
		if !exportAllowed(source.Relation, n.Relation) {
			continue
		}
		out, err := json.Marshal(wire.Frame{
			Src:  addr.ToDotted(n.SelfAddr()),
			Dst:  addr.ToDotted(n.PeerAddr()),
			Type: typ,
			Msg:  msg,
		})
		if err != nil {
			logging.Errorf("encoding %s for %s failed: %v", typ, addr.ToDotted(n.Address), err)
			continue
		}
		if err := r.Transport.Send(n.Address, out); err != nil {
			logging.Errorf("forwarding %s to %s failed: %v", typ, addr.ToDotted(n.Address), err)
			telemetry.DroppedTotal.WithLabelValues("transport").Inc()
		}
	}
}
