package contracts

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Event is one seismic event as supplied by the caller: where it happened,
// how deep, and when.
type Event struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	DepthKm   float64   `json:"depth_km"`
	Time      time.Time `json:"time"`
}

// Origin is the event-side input to a travel-time computation.
type Origin struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	DepthKm   float64 `json:"depth_km"`
}

// Site is the station-side input to a travel-time computation.
type Site struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

// Origin projects the event onto its travel-time origin.
func (e Event) Origin() Origin {
	return Origin{Latitude: e.Latitude, Longitude: e.Longitude, DepthKm: e.DepthKm}
}

// ParseEvents decodes a JSON array of event tuples, each
// [latitude, longitude, depth_km, time]. Coordinates must be numeric
// (numbers or numeric strings), latitude in [-90,90], longitude in
// [-180,180], depth non-negative. Timestamps are RFC 3339; a timestamp
// without zone designator is taken as UTC.
func ParseEvents(data []byte) ([]Event, error) {
	raw, err := decodeTuples(data)
	if err != nil {
		return nil, fmt.Errorf("invalid events: %w", ErrInvalidInput)
	}

	events := make([]Event, 0, len(raw))
	for _, item := range raw {
		ev, err := coerceEvent(item)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func coerceEvent(item any) (Event, error) {
	reject := func() (Event, error) {
		return Event{}, fmt.Errorf("invalid event: %s: %w", renderTuple(item), ErrInvalidInput)
	}

	tuple, ok := item.([]any)
	if !ok || len(tuple) != 4 {
		return reject()
	}

	lat, err := coerceFloat(tuple[0])
	if err != nil || lat < -90 || lat > 90 {
		return reject()
	}
	lon, err := coerceFloat(tuple[1])
	if err != nil || lon < -180 || lon > 180 {
		return reject()
	}
	dep, err := coerceFloat(tuple[2])
	if err != nil || dep < 0 {
		return reject()
	}

	ts, ok := tuple[3].(string)
	if !ok {
		return reject()
	}
	at, err := ParseTime(ts)
	if err != nil {
		return reject()
	}

	return Event{Latitude: lat, Longitude: lon, DepthKm: dep, Time: at}, nil
}

func coerceFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("not a number")
	}
}

// ParseTime accepts an RFC 3339 timestamp, with or without zone designator.
// Zoneless timestamps are interpreted as UTC.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05.999999999", s)
}
