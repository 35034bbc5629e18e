package geo

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestDelta(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"same point", 38.4, 22.1, 38.4, 22.1, 0},
		{"one degree along equator", 0, 0, 0, 1, 1},
		{"antipodal on equator", 0, 0, 0, 180, 180},
		{"pole to pole", 90, 0, -90, 0, 180},
		{"equator to pole", 0, 0, 90, 0, 90},
		{"dateline crossing", 0, 179.5, 0, -179.5, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Delta(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if !almostEqual(got, tc.want, 1e-9) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDeltaSymmetric(t *testing.T) {
	a := Delta(38.4, 22.1, 52.1, 5.2)
	b := Delta(52.1, 5.2, 38.4, 22.1)
	if !almostEqual(a, b, 1e-12) {
		t.Fatalf("delta not symmetric: %v vs %v", a, b)
	}
}

func TestAzimuth(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"due east", 0, 0, 0, 10, 90},
		{"due west", 0, 10, 0, 0, 270},
		{"due north", 0, 0, 10, 0, 0},
		{"due south", 10, 0, 0, 0, 180},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Azimuth(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if !almostEqual(got, tc.want, 1e-9) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
