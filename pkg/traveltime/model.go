package traveltime

import (
	"context"
	"sort"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
	"github.com/jordi-domingo/webdc3/pkg/geo"
)

// Model1D is the built-in one-dimensional earth model: piecewise-linear
// fits of the major travel-time branches over angular distance. Times are
// good to a few seconds, adequate for sizing request windows, not for
// phase picking. The zero value is not usable; call NewModel1D.
type Model1D struct {
	branches []branch
}

type knot struct {
	delta   float64 // degrees
	seconds float64 // travel time at surface focus
}

// branch is one travel-time curve. Knots are ascending by delta and
// bound the distance range over which the phase exists.
type branch struct {
	phase string
	vRed  float64 // crude focal-depth reduction velocity, km/s
	knots []knot
}

// NewModel1D returns the built-in model. It covers the direct branches
// (P, S), their diffractions along the core-mantle boundary (Pdiff,
// Sdiff) and the core phases that carry the first arrival beyond the
// P shadow zone (PKPdf, PKiKP, SKS).
func NewModel1D() *Model1D {
	return &Model1D{branches: []branch{
		{phase: "P", vRed: 8.0, knots: []knot{
			{0, 0}, {5, 77}, {10, 145}, {15, 211}, {20, 273}, {25, 324},
			{30, 372}, {35, 417}, {40, 459}, {45, 500}, {50, 539},
			{55, 576}, {60, 611}, {65, 645}, {70, 676}, {75, 706},
			{80, 735}, {85, 760}, {90, 780}, {95, 800}, {98, 812},
		}},
		{phase: "Pdiff", vRed: 8.0, knots: []knot{
			{98, 812}, {110, 865}, {120, 909}, {130, 953}, {140, 997}, {144, 1015},
		}},
		{phase: "PKiKP", vRed: 8.0, knots: []knot{
			{0, 990}, {30, 1010}, {60, 1053}, {90, 1105}, {113, 1140},
			{120, 1146}, {140, 1170}, {155, 1185},
		}},
		{phase: "PKPdf", vRed: 8.0, knots: []knot{
			{114, 1135}, {130, 1163}, {150, 1193}, {170, 1208}, {180, 1212},
		}},
		{phase: "S", vRed: 4.5, knots: []knot{
			{0, 0}, {5, 138}, {10, 260}, {15, 380}, {20, 492}, {25, 583},
			{30, 670}, {35, 752}, {40, 830}, {45, 903}, {50, 971},
			{55, 1036}, {60, 1097}, {65, 1154}, {70, 1207}, {75, 1256},
			{80, 1301}, {85, 1343}, {90, 1381}, {95, 1415}, {100, 1445},
		}},
		{phase: "Sdiff", vRed: 4.5, knots: []knot{
			{100, 1445}, {110, 1528}, {120, 1611}, {130, 1694}, {140, 1777}, {150, 1860},
		}},
		{phase: "SKS", vRed: 4.5, knots: []knot{
			{62, 1125}, {70, 1180}, {80, 1243}, {90, 1303}, {100, 1359},
			{110, 1410}, {120, 1456}, {130, 1497}, {145, 1550},
		}},
	}}
}

// Arrivals evaluates every branch covering the pair's distance. Station
// elevation is below the model's resolution and is ignored. Never fails.
func (m *Model1D) Arrivals(ctx context.Context, origin contracts.Origin, site contracts.Site) ([]contracts.PhaseArrival, error) {
	delta := geo.Delta(origin.Latitude, origin.Longitude, site.Latitude, site.Longitude)

	var arrivals []contracts.PhaseArrival
	for _, b := range m.branches {
		t, ok := b.at(delta, origin.DepthKm)
		if !ok {
			continue
		}
		arrivals = append(arrivals, contracts.PhaseArrival{Phase: b.phase, Time: t})
	}

	sort.Slice(arrivals, func(i, j int) bool {
		if arrivals[i].Time != arrivals[j].Time {
			return arrivals[i].Time < arrivals[j].Time
		}
		return arrivals[i].Phase < arrivals[j].Phase
	})
	return arrivals, nil
}

// at interpolates the branch at delta and applies the focal-depth
// reduction. A deeper source shaves depth/vRed off the downgoing leg; the
// floor keeps the near-vertical geometry (delta ≈ 0) physical.
func (b branch) at(delta, depthKm float64) (float64, bool) {
	first, last := b.knots[0], b.knots[len(b.knots)-1]
	if delta < first.delta || delta > last.delta {
		return 0, false
	}

	t := last.seconds
	for i := 1; i < len(b.knots); i++ {
		lo, hi := b.knots[i-1], b.knots[i]
		if delta <= hi.delta {
			frac := 0.0
			if hi.delta > lo.delta {
				frac = (delta - lo.delta) / (hi.delta - lo.delta)
			}
			t = lo.seconds + frac*(hi.seconds-lo.seconds)
			break
		}
	}

	red := depthKm / b.vRed
	if t-red < red {
		return red, true
	}
	return t - red, true
}
