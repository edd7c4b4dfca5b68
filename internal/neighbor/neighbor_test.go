package neighbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronak4/BGP-Router/internal/addr"
)

func mustAddr(t *testing.T, s string) addr.Address {
	a, err := addr.ToInt(s)
	require.NoError(t, err)
	return a
}

func TestRegistryLookup(t *testing.T) {
	a1 := mustAddr(t, "192.168.0.2")
	a2 := mustAddr(t, "10.0.0.2")

	r := NewRegistry([]Neighbor{
		{Address: a1, Relation: Customer},
		{Address: a2, Relation: Peer},
	})

	n, ok := r.Lookup(a1)
	require.True(t, ok)
	assert.Equal(t, Customer, n.Relation)

	_, ok = r.Lookup(mustAddr(t, "1.2.3.4"))
	assert.False(t, ok)
}

func TestByPeerAddr(t *testing.T) {
	a1 := mustAddr(t, "192.168.0.2")
	r := NewRegistry([]Neighbor{{Address: a1, Relation: Customer}})

	n, ok := r.ByPeerAddr(mustAddr(t, "192.168.0.2"))
	require.True(t, ok)
	assert.Equal(t, a1, n.Address)
}

func TestParseRelation(t *testing.T) {
	for tok, want := range map[string]Relation{"cust": Customer, "peer": Peer, "prov": Provider} {
		got, err := ParseRelation(tok)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseRelation("friend")
	assert.Error(t, err)
}
