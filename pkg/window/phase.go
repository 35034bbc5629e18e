package window

import (
	"fmt"
	"strings"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// Anchor phases callers may request. Each resolves to a family of
// travel-time branches, so a request for "P" matches whichever P-like
// branch arrives first at the station's distance.
const (
	PhaseP = "P"
	PhaseS = "S"
)

// DeltaThreshold is the angular distance in degrees beyond which direct
// P is no longer the first arriving energy (the P shadow zone); past it
// the engine anchors on core phases (PKP, PKiKP) instead.
const DeltaThreshold = 120.0

// Phase families: the travel-time branch names considered equivalent to
// a requested anchor phase. SKS branches belong to the S family and are
// matched by prefix, since travel-time tables name their legs
// individually (SKS, SKSac, SKSdf, ...).
var (
	pFamily = map[string]bool{
		"P": true, "Pg": true, "Pb": true, "Pn": true, "Pdif": true, "Pdiff": true,
	}
	sFamily = map[string]bool{
		"S": true, "Sg": true, "Sb": true, "Sn": true, "Sdif": true, "Sdiff": true,
	}
)

// PhasePolicy is the event-relative window recipe: which phase arrival
// anchors each end of the window and how far from it, in minutes, the
// end sits. Positive offsets fall after the arrival.
type PhasePolicy struct {
	StartPhase  string
	StartOffset float64 // minutes relative to the start anchor
	EndPhase    string
	EndOffset   float64 // minutes relative to the end anchor
}

// Validate rejects anchor phases other than "P" and "S".
func (p PhasePolicy) Validate() error {
	for _, phase := range []string{p.StartPhase, p.EndPhase} {
		if phase != PhaseP && phase != PhaseS {
			return fmt.Errorf("wrong phase %q: only \"P\" and \"S\" are implemented: %w",
				phase, contracts.ErrInvalidInput)
		}
	}
	return nil
}

// firstArrival scans arrivals, which must be ordered ascending by time,
// for the earliest one matching the requested phase at distance delta.
// The boolean reports whether any arrival matched; phase must already be
// validated. At delta >= DeltaThreshold a P request matches only core
// phases, even if the table still lists a (no longer first) P branch.
func firstArrival(arrivals []contracts.PhaseArrival, phase string, delta float64) (float64, bool) {
	for _, a := range arrivals {
		if matchesPhase(a.Phase, phase, delta) {
			return a.Time, true
		}
	}
	return 0, false
}

func matchesPhase(name, phase string, delta float64) bool {
	if phase == PhaseP {
		if delta >= DeltaThreshold {
			return strings.HasPrefix(name, "PKP") || strings.HasPrefix(name, "PKiKP")
		}
		return pFamily[name]
	}
	return sFamily[name] || strings.HasPrefix(name, "SKS")
}
