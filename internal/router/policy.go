package router

import "github.com/ronak4/BGP-Router/internal/neighbor"

// exportAllowed is the no-transit export rule: a customer's announcements
// and withdrawals are re-advertised to everyone; a peer's or provider's
// are re-advertised only to customers, since this AS never transits
// traffic between two non-paying neighbors.
func exportAllowed(source, candidate neighbor.Relation) bool {
	if source == neighbor.Customer {
		return true
	}
	return candidate == neighbor.Customer
}

// dataForwardAllowed is the data-plane counterpart of exportAllowed:
// forward only if the sender is a customer, or the chosen next hop's
// neighbor is a customer.
func dataForwardAllowed(source, nextHop neighbor.Relation) bool {
	return source == neighbor.Customer || nextHop == neighbor.Customer
}
