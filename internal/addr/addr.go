// Package addr implements the dotted-quad <-> 32-bit integer conversions and
// the neighbor/self/peer address derivations used throughout the RIB.
package addr

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Address is an IPv4 address represented as a 32-bit unsigned integer, most
// significant octet first.
type Address uint32

// ToInt parses a dotted-quad string into an Address.
func ToInt(dotted string) (Address, error) {
	octets := strings.Split(dotted, ".")
	if len(octets) != 4 {
		return 0, fmt.Errorf("addr: %q is not a dotted-quad address", dotted)
	}
	var a Address
	for _, o := range octets {
		v, err := strconv.Atoi(o)
		if err != nil || v < 0 || v > 255 {
			return 0, fmt.Errorf("addr: invalid octet %q in %q", o, dotted)
		}
		a = a<<8 | Address(v)
	}
	return a, nil
}

// ToDotted renders an Address in dotted-quad form.
func ToDotted(a Address) string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(a>>24), byte(a>>16), byte(a>>8), byte(a))
}

// String implements fmt.Stringer so Address values log and print as dotted quads.
func (a Address) String() string {
	return ToDotted(a)
}

// MaskToLen counts the leading 1-bits of a dotted netmask. The mask is
// assumed contiguous; a non-contiguous mask is reported as an error rather
// than silently truncated.
func MaskToLen(dotted string) (int, error) {
	m, err := ToInt(dotted)
	if err != nil {
		return 0, err
	}
	n := bits.OnesCount32(uint32(m))
	if LenToMaskInt(n) != m {
		return 0, errors.Errorf("addr: netmask %q is not contiguous", dotted)
	}
	return n, nil
}

// LenToMaskInt returns the Address form of n leading 1-bits followed by
// 32-n zero bits. n is clamped to [0, 32].
func LenToMaskInt(n int) Address {
	switch {
	case n <= 0:
		return 0
	case n >= 32:
		return 0xFFFFFFFF
	default:
		return Address(0xFFFFFFFF << uint(32-n))
	}
}

// LenToMask is the dotted-quad form of LenToMaskInt.
func LenToMask(n int) string {
	return ToDotted(LenToMaskInt(n))
}

// SelfAddr returns the address we present to a neighbor reachable at
// neighbor: same /24, low octet 1.
func SelfAddr(neighbor Address) Address {
	return (neighbor &^ 0xFF) | 1
}

// PeerAddr returns the address a neighbor presents to us: same /24, low
// octet 2. This is the next_hop recorded for routes learned from neighbor.
func PeerAddr(neighbor Address) Address {
	return (neighbor &^ 0xFF) | 2
}
