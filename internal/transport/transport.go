// Package transport is the thin boundary between the router and the
// network: send a frame to a neighbor, receive frames as they arrive. It
// is deliberately dumb — framing, validation, and dispatch all live
// upstream in internal/wire and internal/router.
package transport

import "github.com/ronak4/BGP-Router/internal/addr"

// Inbound pairs a raw datagram with the neighbor address that sent it.
type Inbound struct {
	From addr.Address
	Data []byte
}

// Transport sends frames to neighbors and surfaces inbound frames on a
// channel for the event loop to consume.
type Transport interface {
	Send(to addr.Address, data []byte) error
	Inbound() <-chan Inbound
	Close() error
}
