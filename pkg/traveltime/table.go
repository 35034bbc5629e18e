// Package traveltime predicts when named seismic phases arrive at a
// station after an event. The engine only needs arrival sequences good
// enough to size request windows; it anchors on the first arrival that
// matches a phase rule.
package traveltime

import (
	"context"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// Table computes candidate phase arrivals for an event/station pair.
type Table interface {
	// Arrivals returns predicted arrivals ordered ascending by travel
	// time. The ordering is part of the contract: callers take the first
	// arrival matching a phase rule and never re-sort. Implementations
	// backed by sources that do not guarantee ordering must validate or
	// sort before returning.
	Arrivals(ctx context.Context, origin contracts.Origin, site contracts.Site) ([]contracts.PhaseArrival, error)
}
