// Package inventory answers "which channels exist, where, and over what
// time spans". Backends hold stream epochs loaded from an external
// inventory; the engine only reads. Lookups distinguish "absent" (nil
// info, nil error — an expected outcome) from backend failure (non-nil
// error, which is fatal to the request being served).
package inventory

import (
	"context"
	"time"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// Cache is the read interface the engine depends on.
type Cache interface {
	// StreamInfo reports coordinates and a size estimate for the channel
	// over [start, end], or (nil, nil) when the channel is not defined
	// anywhere in that range. A degenerate range (start == end) probes a
	// single instant, the way event-relative resolution obtains station
	// coordinates before any window exists.
	StreamInfo(ctx context.Context, start, end time.Time, key contracts.ChannelKey) (*contracts.StreamInfo, error)

	// List returns all epochs overlapping [start, end] whose key matches
	// the pattern; empty pattern components match anything. Results are
	// ordered by key, then epoch start.
	List(ctx context.Context, start, end time.Time, pattern contracts.ChannelKey) ([]StreamEpoch, error)
}

// StreamEpoch is one inventory row: a channel deployment with fixed
// coordinates and sampling over a time span. A zero End means the epoch
// is still open.
type StreamEpoch struct {
	Key        contracts.ChannelKey `json:"key"`
	Latitude   float64              `json:"latitude"`
	Longitude  float64              `json:"longitude"`
	Elevation  float64              `json:"elevation"`
	SampleRate float64              `json:"sample_rate"`
	Start      time.Time            `json:"start"`
	End        time.Time            `json:"end,omitempty"`
}

// Covers reports whether the epoch overlaps [start, end].
func (e StreamEpoch) Covers(start, end time.Time) bool {
	if e.Start.After(end) {
		return false
	}
	return e.End.IsZero() || !e.End.Before(start)
}

// Info builds the lookup result for a query range: the epoch's
// coordinates plus the size estimate for the span, at roughly one byte
// per sample (Steim-compressed miniSEED averages near that). A degenerate
// range yields size zero.
func (e StreamEpoch) Info(start, end time.Time) *contracts.StreamInfo {
	seconds := end.Sub(start).Seconds()
	if seconds < 0 {
		seconds = 0
	}
	return &contracts.StreamInfo{
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
		Elevation: e.Elevation,
		Size:      int64(seconds * e.SampleRate),
	}
}

// matches reports whether the epoch key matches a pattern with empty
// components acting as wildcards.
func matches(key, pattern contracts.ChannelKey) bool {
	if pattern.Network != "" && pattern.Network != key.Network {
		return false
	}
	if pattern.Station != "" && pattern.Station != key.Station {
		return false
	}
	if pattern.Channel != "" && pattern.Channel != key.Channel {
		return false
	}
	if pattern.Location != "" && pattern.Location != key.Location {
		return false
	}
	return true
}
