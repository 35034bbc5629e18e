package traveltime

import (
	"context"
	"strings"
	"testing"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

func modelArrivals(t *testing.T, originLat, originLon, depth, siteLat, siteLon float64) []contracts.PhaseArrival {
	t.Helper()
	arrivals, err := NewModel1D().Arrivals(context.Background(),
		contracts.Origin{Latitude: originLat, Longitude: originLon, DepthKm: depth},
		contracts.Site{Latitude: siteLat, Longitude: siteLon})
	if err != nil {
		t.Fatalf("arrivals: %v", err)
	}
	return arrivals
}

func TestModelArrivalsAscending(t *testing.T) {
	deltas := []float64{0.5, 5, 30, 60, 95, 110, 130, 150, 179}
	for _, d := range deltas {
		arrivals := modelArrivals(t, 0, 0, 10, 0, d)
		if len(arrivals) == 0 {
			t.Fatalf("delta %v: no arrivals", d)
		}
		for i := 1; i < len(arrivals); i++ {
			if arrivals[i].Time < arrivals[i-1].Time {
				t.Fatalf("delta %v: %s at %.1fs before %s at %.1fs",
					d, arrivals[i-1].Phase, arrivals[i-1].Time, arrivals[i].Phase, arrivals[i].Time)
			}
		}
	}
}

func TestModelLocalDistance(t *testing.T) {
	arrivals := modelArrivals(t, 0, 0, 10, 0, 1)

	if arrivals[0].Phase != "P" {
		t.Fatalf("expected P first at 1 degree, got %s", arrivals[0].Phase)
	}
	var sawS bool
	for _, a := range arrivals {
		if a.Phase == "S" {
			sawS = true
			if a.Time <= arrivals[0].Time {
				t.Fatalf("S (%.1fs) not after P (%.1fs)", a.Time, arrivals[0].Time)
			}
		}
	}
	if !sawS {
		t.Fatal("expected an S arrival at 1 degree")
	}
}

func TestModelCoreShadow(t *testing.T) {
	// At 150 degrees the direct branches are gone; core phases carry the
	// first arriving energy.
	arrivals := modelArrivals(t, 0, 0, 10, 0, 150)

	var sawCore bool
	for _, a := range arrivals {
		if a.Phase == "P" || a.Phase == "Pdiff" {
			t.Fatalf("unexpected %s at 150 degrees", a.Phase)
		}
		if strings.HasPrefix(a.Phase, "PKP") || strings.HasPrefix(a.Phase, "PKiKP") {
			sawCore = true
		}
	}
	if !sawCore {
		t.Fatal("expected a core phase at 150 degrees")
	}
	if !strings.HasPrefix(arrivals[0].Phase, "PK") {
		t.Fatalf("expected a core phase first, got %s", arrivals[0].Phase)
	}
}

func TestModelDepthShavesTeleseismicTime(t *testing.T) {
	shallow := modelArrivals(t, 0, 0, 0, 0, 60)
	deep := modelArrivals(t, 0, 0, 600, 0, 60)

	pTime := func(arrivals []contracts.PhaseArrival) float64 {
		for _, a := range arrivals {
			if a.Phase == "P" {
				return a.Time
			}
		}
		t.Fatal("no P arrival at 60 degrees")
		return 0
	}

	if deepP, shallowP := pTime(deep), pTime(shallow); deepP >= shallowP {
		t.Fatalf("deep P (%.1fs) not earlier than shallow P (%.1fs)", deepP, shallowP)
	}
}

func TestModelNearVerticalStaysPositive(t *testing.T) {
	arrivals := modelArrivals(t, 0, 0, 10, 0, 0)
	for _, a := range arrivals {
		if a.Time < 0 {
			t.Fatalf("%s has negative travel time %.3f", a.Phase, a.Time)
		}
	}
	if arrivals[0].Time <= 0 {
		t.Fatalf("expected positive first arrival for buried source, got %.3f", arrivals[0].Time)
	}
}

func TestModelDeterministic(t *testing.T) {
	a := modelArrivals(t, 38.4, 22.1, 33, 52.1, 5.2)
	b := modelArrivals(t, 38.4, 22.1, 33, 52.1, 5.2)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("arrival %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
