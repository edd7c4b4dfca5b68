package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronak4/BGP-Router/internal/addr"
)

func TestDecodeRejectsMissingFields(t *testing.T) {
	_, err := Decode([]byte(`{"src":"192.168.0.1","type":"update","msg":{}}`))
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"src":"1.2.3.1","dst":"1.2.3.2","type":"bogus","msg":{}}`))
	assert.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src, err := addr.ToInt("192.168.0.1")
	require.NoError(t, err)
	dst, err := addr.ToInt("192.168.0.2")
	require.NoError(t, err)

	payload := UpdatePayload{
		Network:    "10.0.0.0",
		Netmask:    "255.0.0.0",
		LocalPref:  100,
		SelfOrigin: true,
		ASPath:     []int{1, 2},
		Origin:     "IGP",
	}
	raw, err := Encode(src, dst, Update, payload)
	require.NoError(t, err)

	f, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "192.168.0.1", f.Src)
	assert.Equal(t, "192.168.0.2", f.Dst)
	assert.Equal(t, Update, f.Type)

	got, err := DecodeUpdate(f.Msg)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDecodeUpdateRejectsUnknownOrigin(t *testing.T) {
	raw := json.RawMessage(`{"network":"10.0.0.0","netmask":"255.0.0.0","localpref":1,"selfOrigin":true,"ASPath":[],"origin":"BOGUS"}`)
	_, err := DecodeUpdate(raw)
	assert.Error(t, err)
}

func TestDecodeUpdateRejectsNonContiguousNetmask(t *testing.T) {
	raw := json.RawMessage(`{"network":"10.0.0.0","netmask":"255.0.255.0","localpref":1,"selfOrigin":true,"ASPath":[],"origin":"IGP"}`)
	_, err := DecodeUpdate(raw)
	assert.Error(t, err)
}

func TestDecodeWithdrawParsesMultipleEntries(t *testing.T) {
	raw := json.RawMessage(`[{"network":"10.0.0.0","netmask":"255.0.0.0"},{"network":"10.1.0.0","netmask":"255.255.0.0"}]`)
	entries, err := DecodeWithdraw(raw)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "10.1.0.0", entries[1].Network)
}

func TestDecodeWithdrawRejectsMalformedNetwork(t *testing.T) {
	raw := json.RawMessage(`[{"network":"not-an-ip","netmask":"255.0.0.0"}]`)
	_, err := DecodeWithdraw(raw)
	assert.Error(t, err)
}
