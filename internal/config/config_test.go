package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronak4/BGP-Router/internal/addr"
	"github.com/ronak4/BGP-Router/internal/neighbor"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]string{"1", "7001-192.168.0.2-cust", "7002-10.0.0.2-peer"})
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.ASN)
	require.Len(t, cfg.Descriptors, 2)

	a, err := addr.ToInt("192.168.0.2")
	require.NoError(t, err)
	assert.Equal(t, Descriptor{Port: 7001, NeighborAddr: a, Relation: neighbor.Customer}, cfg.Descriptors[0])
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse([]string{})
	assert.Error(t, err)

	_, err = Parse([]string{"notanumber", "7001-192.168.0.2-cust"})
	assert.Error(t, err)

	_, err = Parse([]string{"1", "notadescriptor"})
	assert.Error(t, err)

	_, err = Parse([]string{"1", "7001-192.168.0.2-friend"})
	assert.Error(t, err)
}
