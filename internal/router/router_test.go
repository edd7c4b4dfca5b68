package router

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronak4/BGP-Router/internal/addr"
	"github.com/ronak4/BGP-Router/internal/neighbor"
	"github.com/ronak4/BGP-Router/internal/transport"
	"github.com/ronak4/BGP-Router/internal/wire"
)

// fakeTransport is an in-memory transport.Transport recording every frame
// sent to each address, with no actual sockets involved.
type fakeTransport struct {
	sent    map[addr.Address][][]byte
	inbound chan transport.Inbound
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		sent:    make(map[addr.Address][][]byte),
		inbound: make(chan transport.Inbound, 16),
	}
}

func (f *fakeTransport) Send(to addr.Address, data []byte) error {
	f.sent[to] = append(f.sent[to], data)
	return nil
}

func (f *fakeTransport) Inbound() <-chan transport.Inbound { return f.inbound }
func (f *fakeTransport) Close() error                      { return nil }

func (f *fakeTransport) framesTo(t *testing.T, to addr.Address) []wire.Frame {
	var frames []wire.Frame
	for _, raw := range f.sent[to] {
		var fr wire.Frame
		require.NoError(t, json.Unmarshal(raw, &fr))
		frames = append(frames, fr)
	}
	return frames
}

func mustA(t *testing.T, s string) addr.Address {
	a, err := addr.ToInt(s)
	require.NoError(t, err)
	return a
}

// newTestRouter builds an AS100 router with a customer, a peer, and a
// provider neighbor, covering every relation the export and data-plane
// policies branch on.
func newTestRouter(t *testing.T) (*Router, *fakeTransport, addr.Address, addr.Address, addr.Address) {
	cust := mustA(t, "192.168.0.2")
	peer := mustA(t, "192.168.1.2")
	prov := mustA(t, "192.168.2.2")

	reg := neighbor.NewRegistry([]neighbor.Neighbor{
		{Address: cust, Relation: neighbor.Customer},
		{Address: peer, Relation: neighbor.Peer},
		{Address: prov, Relation: neighbor.Provider},
	})
	ft := newFakeTransport()
	r := New(100, reg, ft)
	return r, ft, cust, peer, prov
}

func updateFrame(t *testing.T, from, to addr.Address, network, mask string, localPref int, selfOrigin bool) []byte {
	payload := wire.UpdatePayload{
		Network:    network,
		Netmask:    mask,
		LocalPref:  localPref,
		SelfOrigin: selfOrigin,
		ASPath:     []int{},
		Origin:     "IGP",
	}
	raw, err := wire.Encode(addr.PeerAddr(from), to, wire.Update, payload)
	require.NoError(t, err)
	return raw
}

func TestHandleUpdateInstallsRouteAndExportsToEligibleNeighbors(t *testing.T) {
	r, ft, cust, peer, prov := newTestRouter(t)

	r.Dispatch(updateFrame(t, cust, addr.SelfAddr(cust), "10.0.0.0", "255.0.0.0", 100, true))

	require.Equal(t, 1, r.RIB.Table.Len())
	entry := r.RIB.Table.Entries()[0]
	assert.Equal(t, addr.PeerAddr(cust), entry.NextHop)

	// A customer's route must be exported to both the peer and the provider.
	peerFrames := ft.framesTo(t, peer)
	provFrames := ft.framesTo(t, prov)
	require.Len(t, peerFrames, 1)
	require.Len(t, provFrames, 1)
	assert.Equal(t, wire.Update, peerFrames[0].Type)

	var out wire.OutgoingUpdatePayload
	require.NoError(t, json.Unmarshal(peerFrames[0].Msg, &out))
	assert.Equal(t, []int{100}, out.ASPath)
}

func TestHandleUpdateFromPeerNotExportedToOtherPeerOrProvider(t *testing.T) {
	r, ft, _, peer, prov := newTestRouter(t)

	r.Dispatch(updateFrame(t, peer, addr.SelfAddr(peer), "10.0.0.0", "255.0.0.0", 100, true))

	assert.Empty(t, ft.sent[prov])
	_ = peer
}

func TestHandleUpdateFromProviderExportedOnlyToCustomer(t *testing.T) {
	r, ft, cust, peer, prov := newTestRouter(t)

	r.Dispatch(updateFrame(t, prov, addr.SelfAddr(prov), "10.0.0.0", "255.0.0.0", 100, true))

	assert.Len(t, ft.sent[cust], 1)
	assert.Empty(t, ft.sent[peer])
}

func TestHandleDataNoRouteRepliesToSender(t *testing.T) {
	r, ft, cust, _, _ := newTestRouter(t)

	dataRaw, err := wire.Encode(addr.PeerAddr(cust), mustA(t, "10.0.0.5"), wire.Data, json.RawMessage(`{"payload":"hi"}`))
	require.NoError(t, err)
	r.Dispatch(dataRaw)

	frames := ft.framesTo(t, cust)
	require.Len(t, frames, 1)
	assert.Equal(t, wire.NoRoute, frames[0].Type)
}

func TestHandleDataNoTransitBetweenPeerAndProvider(t *testing.T) {
	r, ft, _, peer, prov := newTestRouter(t)

	// Provider advertises a route; it is now reachable via the provider.
	r.Dispatch(updateFrame(t, prov, addr.SelfAddr(prov), "10.0.0.0", "255.0.0.0", 100, true))

	dataRaw, err := wire.Encode(addr.PeerAddr(peer), mustA(t, "10.0.0.5"), wire.Data, json.RawMessage(`{}`))
	require.NoError(t, err)
	r.Dispatch(dataRaw)

	// peer -> provider would be transit between two non-customers: dropped,
	// and no no_route reply is sent either since there IS a route, it's
	// just not exportable.
	assert.Empty(t, ft.sent[prov])
	assert.Empty(t, ft.sent[peer])
}

func TestHandleDataCustomerToProviderAllowed(t *testing.T) {
	r, ft, cust, _, prov := newTestRouter(t)

	r.Dispatch(updateFrame(t, prov, addr.SelfAddr(prov), "10.0.0.0", "255.0.0.0", 100, true))

	dataRaw, err := wire.Encode(addr.PeerAddr(cust), mustA(t, "10.0.0.5"), wire.Data, json.RawMessage(`{"a":1}`))
	require.NoError(t, err)
	r.Dispatch(dataRaw)

	frames := ft.framesTo(t, prov)
	require.Len(t, frames, 1)
	assert.Equal(t, wire.Data, frames[0].Type)
}

func TestHandleWithdrawForwardedVerbatimAndRemovesRoute(t *testing.T) {
	r, ft, cust, peer, _ := newTestRouter(t)

	r.Dispatch(updateFrame(t, cust, addr.SelfAddr(cust), "10.0.0.0", "255.0.0.0", 100, true))
	require.Equal(t, 1, r.RIB.Table.Len())

	withdrawPayload := []wire.WithdrawEntry{{Network: "10.0.0.0", Netmask: "255.0.0.0"}}
	raw, err := wire.Encode(addr.PeerAddr(cust), addr.SelfAddr(cust), wire.Withdraw, withdrawPayload)
	require.NoError(t, err)
	r.Dispatch(raw)

	assert.Equal(t, 0, r.RIB.Table.Len())
	// The peer first received the customer's update, then the withdrawal.
	frames := ft.framesTo(t, peer)
	require.Len(t, frames, 2)
	assert.Equal(t, wire.Withdraw, frames[1].Type)
	assert.JSONEq(t, `[{"network":"10.0.0.0","netmask":"255.0.0.0"}]`, string(frames[1].Msg))
}

func TestHandleDumpRepliesWithTableSnapshot(t *testing.T) {
	r, ft, cust, _, _ := newTestRouter(t)
	r.Dispatch(updateFrame(t, cust, addr.SelfAddr(cust), "10.0.0.0", "255.0.0.0", 100, true))

	dumpRaw, err := wire.Encode(addr.PeerAddr(cust), addr.SelfAddr(cust), wire.Dump, wire.EmptyPayload{})
	require.NoError(t, err)
	r.Dispatch(dumpRaw)

	frames := ft.framesTo(t, cust)
	require.Len(t, frames, 1)
	assert.Equal(t, wire.Table, frames[0].Type)

	var entries []wire.TableEntry
	require.NoError(t, json.Unmarshal(frames[0].Msg, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "10.0.0.0", entries[0].Network)
}

func TestDispatchDropsFrameFromUnknownNeighbor(t *testing.T) {
	r, ft, cust, _, _ := newTestRouter(t)

	stranger := mustA(t, "203.0.113.2")
	raw := updateFrame(t, stranger, addr.SelfAddr(stranger), "10.0.0.0", "255.0.0.0", 100, true)
	r.Dispatch(raw)

	assert.Equal(t, 0, r.RIB.Table.Len())
	assert.Empty(t, ft.sent[cust])
}
