package contracts

import (
	"errors"
	"testing"
	"time"
)

func TestParseEvents(t *testing.T) {
	evs, err := ParseEvents([]byte(`[[38.4, 22.1, 10.0, "2013-08-14T06:12:00Z"]]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	ev := evs[0]
	if ev.Latitude != 38.4 || ev.Longitude != 22.1 || ev.DepthKm != 10.0 {
		t.Fatalf("unexpected coordinates: %+v", ev)
	}
	want := time.Date(2013, 8, 14, 6, 12, 0, 0, time.UTC)
	if !ev.Time.Equal(want) {
		t.Fatalf("expected %v, got %v", want, ev.Time)
	}
}

func TestParseEventsCoercesNumericStrings(t *testing.T) {
	evs, err := ParseEvents([]byte(`[["38.4", "22.1", "10", "2013-08-14T06:12:00Z"]]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if evs[0].Latitude != 38.4 {
		t.Fatalf("expected latitude 38.4, got %v", evs[0].Latitude)
	}
}

func TestParseEventsZonelessTimeIsUTC(t *testing.T) {
	evs, err := ParseEvents([]byte(`[[0, 0, 0, "2013-08-14T06:12:00"]]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2013, 8, 14, 6, 12, 0, 0, time.UTC)
	if !evs[0].Time.Equal(want) {
		t.Fatalf("expected %v, got %v", want, evs[0].Time)
	}
}

func TestParseEventsRejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"not an array", `"event"`},
		{"three fields", `[[38.4, 22.1, "2013-08-14T06:12:00Z"]]`},
		{"latitude out of range", `[[91, 0, 10, "2013-08-14T06:12:00Z"]]`},
		{"longitude out of range", `[[0, -180.5, 10, "2013-08-14T06:12:00Z"]]`},
		{"negative depth", `[[0, 0, -1, "2013-08-14T06:12:00Z"]]`},
		{"non-numeric latitude", `[["north", 0, 10, "2013-08-14T06:12:00Z"]]`},
		{"boolean latitude", `[[true, 0, 10, "2013-08-14T06:12:00Z"]]`},
		{"bad timestamp", `[[0, 0, 10, "yesterday"]]`},
		{"numeric timestamp", `[[0, 0, 10, 1376460720]]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseEvents([]byte(tc.in))
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestEventOrigin(t *testing.T) {
	ev := Event{Latitude: 1, Longitude: 2, DepthKm: 3, Time: time.Now()}
	o := ev.Origin()
	if o.Latitude != 1 || o.Longitude != 2 || o.DepthKm != 3 {
		t.Fatalf("unexpected origin: %+v", o)
	}
}
