package transport

import (
	"fmt"
	"net"
	"sync"

	"github.com/ronak4/BGP-Router/internal/addr"
	"github.com/ronak4/BGP-Router/internal/config"
	"github.com/ronak4/BGP-Router/internal/wire"
	"github.com/ronak4/BGP-Router/pkg/logging"
)

// UDPTransport opens one UDP socket per neighbor descriptor, bound to an
// ephemeral local port and connected to the neighbor's port on localhost —
// the simulated inter-AS network this daemon runs on. Each socket gets a
// dedicated reader goroutine that blocks on Read and forwards raw
// datagrams onto a single channel, so the event loop never blocks on any
// one neighbor.
type UDPTransport struct {
	mu      sync.Mutex
	conns   map[addr.Address]*net.UDPConn
	inbound chan Inbound
	wg      sync.WaitGroup
}

const inboundBufferSize = 256

// Dial opens one socket per descriptor and starts its reader goroutine.
func Dial(descriptors []config.Descriptor) (*UDPTransport, error) {
	t := &UDPTransport{
		conns:   make(map[addr.Address]*net.UDPConn, len(descriptors)),
		inbound: make(chan Inbound, inboundBufferSize),
	}
	for _, d := range descriptors {
		raddr := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: d.Port}
		conn, err := net.DialUDP("udp4", nil, raddr)
		if err != nil {
			t.Close()
			return nil, fmt.Errorf("transport: dialing neighbor %s on port %d: %w", addr.ToDotted(d.NeighborAddr), d.Port, err)
		}
		t.conns[d.NeighborAddr] = conn

		t.wg.Add(1)
		go t.readLoop(d.NeighborAddr, conn)

		if err := t.sendHandshake(d.NeighborAddr); err != nil {
			logging.Warnf("transport: handshake to %s failed: %v", addr.ToDotted(d.NeighborAddr), err)
		}
	}
	return t, nil
}

// sendHandshake emits a handshake frame to neighborAddr as soon as its
// socket is opened, announcing this router's presence on the link before
// any route traffic flows.
func (t *UDPTransport) sendHandshake(neighborAddr addr.Address) error {
	frame, err := wire.Encode(addr.SelfAddr(neighborAddr), neighborAddr, wire.Handshake, wire.EmptyPayload{})
	if err != nil {
		return fmt.Errorf("transport: encoding handshake to %s: %w", addr.ToDotted(neighborAddr), err)
	}
	return t.Send(neighborAddr, frame)
}

func (t *UDPTransport) readLoop(from addr.Address, conn *net.UDPConn) {
	defer t.wg.Done()
	buf := make([]byte, 65535)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			// Socket closed (normal shutdown) or a transport failure;
			// either way this neighbor's reader goroutine is done.
			logging.Debugf("transport: read loop for %s stopped: %v", addr.ToDotted(from), err)
			return
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		t.inbound <- Inbound{From: from, Data: data}
	}
}

// Send transmits data to the neighbor at to. A failure is returned to the
// caller to log per the transport-failure policy; the frame is not retried.
func (t *UDPTransport) Send(to addr.Address, data []byte) error {
	t.mu.Lock()
	conn, ok := t.conns[to]
	t.mu.Unlock()
	if !ok {
		return fmt.Errorf("transport: no socket for neighbor %s", addr.ToDotted(to))
	}
	_, err := conn.Write(data)
	return err
}

// Inbound returns the channel of frames received across every neighbor
// socket.
func (t *UDPTransport) Inbound() <-chan Inbound {
	return t.inbound
}

// Close shuts down every neighbor socket and waits for its reader goroutine
// to exit.
func (t *UDPTransport) Close() error {
	t.mu.Lock()
	conns := t.conns
	t.conns = nil
	t.mu.Unlock()

	var firstErr error
	for _, conn := range conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	t.wg.Wait()
	return firstErr
}
