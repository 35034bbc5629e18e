// Package geo provides the spherical-earth geometry used to relate events
// to stations. Distances are angular (degrees of arc at the earth's
// center), the customary unit in travel-time work.
package geo

import "math"

// Delta returns the great-circle distance between two points in degrees
// of arc. Computed with the haversine form, which stays accurate for
// small separations.
func Delta(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := lat1 * math.Pi / 180
	p2 := lat2 * math.Pi / 180
	dp := (lat2 - lat1) * math.Pi / 180
	dl := (lon2 - lon1) * math.Pi / 180

	sp := math.Sin(dp / 2)
	sl := math.Sin(dl / 2)
	a := sp*sp + math.Cos(p1)*math.Cos(p2)*sl*sl

	return 2 * math.Asin(math.Min(1, math.Sqrt(a))) * 180 / math.Pi
}

// Azimuth returns the initial bearing from point 1 to point 2 in degrees
// clockwise from north, normalized to [0, 360).
func Azimuth(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := lat1 * math.Pi / 180
	p2 := lat2 * math.Pi / 180
	dl := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(dl) * math.Cos(p2)
	x := math.Cos(p1)*math.Sin(p2) - math.Sin(p1)*math.Cos(p2)*math.Cos(dl)

	az := math.Atan2(y, x) * 180 / math.Pi
	if az < 0 {
		az += 360
	}
	return az
}
