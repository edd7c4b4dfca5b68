package addr

import "fmt"

// Prefix is a (network, length) pair naming a contiguous IPv4 block.
type Prefix struct {
	Network Address
	Length  int
}

// NewPrefix builds a Prefix from a dotted network and a dotted netmask,
// rejecting a non-contiguous mask or an out-of-range length.
func NewPrefix(network, netmask string) (Prefix, error) {
	n, err := ToInt(network)
	if err != nil {
		return Prefix{}, err
	}
	l, err := MaskToLen(netmask)
	if err != nil {
		return Prefix{}, err
	}
	return Prefix{Network: n, Length: l}, nil
}

// Netmask is the dotted-quad mask for this prefix's length.
func (p Prefix) Netmask() string {
	return LenToMask(p.Length)
}

// Contains reports whether the top p.Length bits of d match the top
// p.Length bits of p.Network. A zero-length prefix matches everything.
func (p Prefix) Contains(d Address) bool {
	if p.Length == 0 {
		return true
	}
	mask := LenToMaskInt(p.Length)
	return d&mask == p.Network&mask
}

// String renders the prefix in CIDR form, e.g. "10.0.0.0/8".
func (p Prefix) String() string {
	return fmt.Sprintf("%s/%d", ToDotted(p.Network), p.Length)
}

// Equal reports whether two prefixes name the same network block.
func (p Prefix) Equal(o Prefix) bool {
	return p.Network == o.Network && p.Length == o.Length
}

// siblingDelta is 2^(32-L), the integer distance between the two halves of
// an L-1 length super-prefix.
func siblingDelta(length int) Address {
	if length <= 0 || length > 32 {
		return 0
	}
	if length == 32 {
		return 1
	}
	return Address(1) << uint(32-length)
}

// Mergeable reports whether p and o are the two halves of the same
// (p.Length-1)-length super-prefix: same length L > 0, networks that differ
// by exactly 2^(32-L), and identical once the Lth bit is cleared.
func (p Prefix) Mergeable(o Prefix) bool {
	if p.Length == 0 || p.Length != o.Length {
		return false
	}
	delta := siblingDelta(p.Length)
	if p.Network&^delta != o.Network&^delta {
		return false
	}
	diff := int64(p.Network) - int64(o.Network)
	return diff == int64(delta) || diff == -int64(delta)
}

// Supernet returns the (p.Length-1)-length prefix covering both p and a
// mergeable sibling: network with the Lth bit cleared.
func (p Prefix) Supernet() Prefix {
	net := p.Network
	if p.Length > 0 {
		clearBit := Address(1) << uint(32-p.Length)
		net &^= clearBit
	}
	return Prefix{Network: net, Length: p.Length - 1}
}
