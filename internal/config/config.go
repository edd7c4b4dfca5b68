// Package config gives the daemon's startup contract — an AS number plus
// a list of (port, neighbor_address, relation) descriptors — a concrete,
// typed shape. Argument parsing itself remains an external collaborator:
// the core never sees a raw command line, only a Config.
package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ronak4/BGP-Router/internal/addr"
	"github.com/ronak4/BGP-Router/internal/neighbor"
)

// Descriptor is one neighbor connection descriptor.
type Descriptor struct {
	Port         int
	NeighborAddr addr.Address
	Relation     neighbor.Relation
}

// Config is the fully parsed startup contract.
type Config struct {
	ASN         int
	Descriptors []Descriptor
}

// Parse builds a Config from positional command-line arguments: the AS
// number followed by any number of "port-address-relation" descriptors,
// e.g. "7001-192.168.0.2-cust".
func Parse(args []string) (Config, error) {
	if len(args) < 1 {
		return Config{}, errors.New("config: usage: bgprouterd <asn> <descriptor>...")
	}
	asn, err := strconv.Atoi(args[0])
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: invalid AS number %q", args[0])
	}

	cfg := Config{ASN: asn}
	for _, raw := range args[1:] {
		d, err := parseDescriptor(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.Descriptors = append(cfg.Descriptors, d)
	}
	return cfg, nil
}

func parseDescriptor(raw string) (Descriptor, error) {
	portPart, rest, ok := strings.Cut(raw, "-")
	if !ok {
		return Descriptor{}, errors.Errorf("config: malformed descriptor %q", raw)
	}
	addrPart, relPart, ok := strings.Cut(rest, "-")
	if !ok {
		return Descriptor{}, errors.Errorf("config: malformed descriptor %q", raw)
	}

	port, err := strconv.Atoi(portPart)
	if err != nil {
		return Descriptor{}, errors.Wrapf(err, "config: invalid port in descriptor %q", raw)
	}
	a, err := addr.ToInt(addrPart)
	if err != nil {
		return Descriptor{}, err
	}
	rel, err := neighbor.ParseRelation(relPart)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Port: port, NeighborAddr: a, Relation: rel}, nil
}
