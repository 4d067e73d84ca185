package employee

import (
	"fmt"
	"strings"

	"bookstore/internal/pkg/errs"
)

// Capability is a set of permissions relevant to the order workflow, stored as a bit mask.
type Capability uint8

const (
	// CanApprove allows approving, rejecting and cancelling orders and assigning couriers.
	CanApprove Capability = 1 << iota
	// CanDeliver allows being assigned as the courier of an order.
	CanDeliver
)

// Has reports whether every bit of want is set.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// String lists capability names joined by "," (e.g. "approve,deliver").
func (c Capability) String() string {
	var names []string
	if c.Has(CanApprove) {
		names = append(names, "approve")
	}
	if c.Has(CanDeliver) {
		names = append(names, "deliver")
	}
	return strings.Join(names, ",")
}

// ParseCapabilities converts names such as "approve" or "deliver" into a set.
func ParseCapabilities(names ...string) (Capability, error) {
	var c Capability
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "approve":
			c |= CanApprove
		case "deliver":
			c |= CanDeliver
		case "":
		default:
			return 0, errs.NewValueIsInvalidErrorWithCause("capability", fmt.Errorf("%q is not a known capability", name))
		}
	}
	return c, nil
}
