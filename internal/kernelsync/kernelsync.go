// Package kernelsync implements component L: mirroring RIB entries into
// the real Linux FIB with a dedicated route protocol tag, so they can be
// told apart from routes installed by anything else and swept cleanly on
// shutdown. It is grounded on the teacher's internal/system (netctl route
// helpers, RouteTable bookkeeping), narrowed down to the two operations the
// router needs: "this prefix now points here" and "this prefix is gone."
package kernelsync

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"

	"github.com/ronak4/BGP-Router/internal/addr"
	"github.com/ronak4/BGP-Router/pkg/logging"
)

// Protocol is the route protocol tag used to mark every route this package
// installs, so RemoveAll only ever touches routes it owns.
const Protocol = netlink.RouteProtocol(201)

// Syncer installs and removes kernel routes for the RIB's best paths. It
// keeps its own record of what it installed — the kernel is the source of
// truth for routing, but the record lets SyncBestPath skip a pair it
// already installed, and lets Withdraw and RemoveAll touch only prefixes it
// installed, without a RouteGet round trip.
type Syncer struct {
	installed map[addr.Prefix]net.IP
}

// New returns a Syncer with no routes installed yet.
func New() *Syncer {
	return &Syncer{installed: make(map[addr.Prefix]net.IP)}
}

// SyncBestPath installs or updates a route for p via nextHop. It is a
// no-op if this Syncer already installed this exact (prefix, next_hop)
// pair.
func (s *Syncer) SyncBestPath(p addr.Prefix, nextHop addr.Address) error {
	dst := prefixToIPNet(p)
	gw := addrToIP(nextHop)

	if existing, ok := s.installed[p]; ok && existing.Equal(gw) {
		return nil
	}

	route := &netlink.Route{Dst: dst, Gw: gw, Protocol: Protocol}
	filter := &netlink.Route{Dst: dst}
	existing, err := netlink.RouteListFiltered(netlink.FAMILY_ALL, filter, netlink.RT_FILTER_DST)
	if err != nil {
		return fmt.Errorf("kernelsync: listing routes for %s: %w", p, err)
	}

	for _, r := range existing {
		if r.Protocol == Protocol {
			if err := netlink.RouteReplace(route); err != nil {
				return fmt.Errorf("kernelsync: replacing route for %s: %w", p, err)
			}
			s.installed[p] = gw
			return nil
		}
	}

	if err := netlink.RouteAdd(route); err != nil {
		return fmt.Errorf("kernelsync: adding route for %s: %w", p, err)
	}
	s.installed[p] = gw
	logging.Debugf("kernelsync: installed %s via %s", p, addr.ToDotted(nextHop))
	return nil
}

// Withdraw removes the kernel route for p, if one was installed.
func (s *Syncer) Withdraw(p addr.Prefix) error {
	if _, ok := s.installed[p]; !ok {
		return nil
	}
	route := &netlink.Route{Dst: prefixToIPNet(p), Protocol: Protocol}
	if err := netlink.RouteDel(route); err != nil {
		return fmt.Errorf("kernelsync: removing route for %s: %w", p, err)
	}
	delete(s.installed, p)
	logging.Debugf("kernelsync: removed %s", p)
	return nil
}

// RemoveAll sweeps every route this Syncer installed, for use on shutdown.
func (s *Syncer) RemoveAll() {
	for p := range s.installed {
		if err := s.Withdraw(p); err != nil {
			logging.Errorf("kernelsync: cleanup of %s failed: %v", p, err)
		}
	}
}

func prefixToIPNet(p addr.Prefix) *net.IPNet {
	ip := addrToIP(p.Network)
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(p.Length, 32)}
}

func addrToIP(a addr.Address) net.IP {
	return net.IPv4(byte(a>>24), byte(a>>16), byte(a>>8), byte(a))
}
