// Package window is the core of the engine: it turns (events, channels,
// phase policy) or an explicit time range into the ordered sequence of
// per-channel request windows, validated against the inventory and
// capped at a global line limit.
//
// Failure semantics are asymmetric by design. Conditions local to one
// (event, channel) pair — the channel being unknown, the travel-time
// computation failing, no arrival matching the requested phase — skip
// that pair and keep going. Malformed input and the line limit are
// fatal: the request fails as a whole and no partial output is
// returned.
package window

import (
	"context"
	"log/slog"
	"time"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
	"github.com/jordi-domingo/webdc3/pkg/geo"
	"github.com/jordi-domingo/webdc3/pkg/inventory"
	"github.com/jordi-domingo/webdc3/pkg/traveltime"
)

// DefaultMaxLines caps the result count per request unless configured
// otherwise.
const DefaultMaxLines = 10000

// Config tunes a Resolver. Zero values take the defaults noted per
// field.
type Config struct {
	// MaxLines is the global cap on emitted windows per request
	// (default DefaultMaxLines). Zero means "use the default"; a
	// literal zero-line cap must be set explicitly via MaxLinesSet.
	MaxLines int

	// MaxLinesSet forces MaxLines to be honored verbatim, so a
	// configured limit of zero rejects any non-empty result.
	MaxLinesSet bool

	// Workers bounds concurrent (event, channel) resolution in
	// event-relative mode. Values <= 1 resolve serially. The output is
	// identical either way.
	Workers int
}

// Resolver computes request windows against an inventory cache and a
// travel-time table. Both collaborators must be safe for concurrent
// readers; the resolver itself holds no mutable state across calls.
type Resolver struct {
	cache    inventory.Cache
	table    traveltime.Table
	maxLines int
	workers  int
	logger   *slog.Logger
}

// NewResolver builds a resolver over the given collaborators.
func NewResolver(cache inventory.Cache, table traveltime.Table, cfg Config) *Resolver {
	maxLines := cfg.MaxLines
	if maxLines == 0 && !cfg.MaxLinesSet {
		maxLines = DefaultMaxLines
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Resolver{
		cache:    cache,
		table:    table,
		maxLines: maxLines,
		workers:  workers,
		logger:   slog.Default().With("component", "window"),
	}
}

// ResolveExplicit validates every channel over the caller-supplied
// window and returns one result per channel known to the inventory, in
// channel order. Start and end pass through unchanged.
func (r *Resolver) ResolveExplicit(ctx context.Context, start, end time.Time, keys []contracts.ChannelKey) ([]contracts.TimeWindow, error) {
	acc := NewAccumulator(r.maxLines)
	for _, key := range keys {
		info, err := r.cache.StreamInfo(ctx, start, end, key)
		if err != nil {
			return nil, err
		}
		if info == nil {
			continue
		}
		if err := acc.TryAppend(contracts.TimeWindow{Start: start, End: end, Key: key, Size: info.Size}); err != nil {
			return nil, err
		}
	}
	return acc.Windows(), nil
}

// ResolveEvents anchors a window on phase arrivals for every
// (event, channel) pair and returns the validated results in canonical
// order: events outer, channels inner.
func (r *Resolver) ResolveEvents(ctx context.Context, events []contracts.Event, keys []contracts.ChannelKey, policy PhasePolicy) ([]contracts.TimeWindow, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if r.workers > 1 {
		return r.resolveEventsParallel(ctx, events, keys, policy)
	}

	acc := NewAccumulator(r.maxLines)
	for _, ev := range events {
		for _, key := range keys {
			out, err := r.resolvePair(ctx, ev, key, policy)
			if err != nil {
				return nil, err
			}
			if !out.resolved {
				continue
			}
			if err := acc.TryAppend(out.window); err != nil {
				return nil, err
			}
		}
	}
	return acc.Windows(), nil
}

// outcome is the tagged result of resolving one (event, channel) pair.
// Skips are already logged by the time one is returned; only
// infrastructure failures surface as errors alongside it.
type outcome struct {
	resolved bool
	window   contracts.TimeWindow
}

func skipped() outcome { return outcome{} }

// resolvePair runs the event-relative recipe for a single pair: probe
// the inventory at the event instant for station coordinates, pick the
// anchor arrivals, apply the offsets, then re-validate the concrete
// window against the inventory.
func (r *Resolver) resolvePair(ctx context.Context, ev contracts.Event, key contracts.ChannelKey, policy PhasePolicy) (outcome, error) {
	// Degenerate probe: no window exists yet, the event instant is only
	// used to find which epoch's coordinates apply.
	probe, err := r.cache.StreamInfo(ctx, ev.Time, ev.Time, key)
	if err != nil {
		return outcome{}, err
	}
	if probe == nil {
		return skipped(), nil
	}

	delta := geo.Delta(ev.Latitude, ev.Longitude, probe.Latitude, probe.Longitude)

	arrivals, err := r.table.Arrivals(ctx, ev.Origin(), probe.Site())
	if err != nil {
		// Cancellation is the caller aborting, not the table failing.
		if ctx.Err() != nil {
			return outcome{}, ctx.Err()
		}
		r.logger.Error("travel-time computation failed",
			"channel", key.String(), "event_time", ev.Time, "error", err)
		return skipped(), nil
	}

	startAnchor, startOK := firstArrival(arrivals, policy.StartPhase, delta)
	if !startOK {
		r.logger.Error("did not find startphase",
			"phase", policy.StartPhase, "channel", key.String(), "delta", delta, "event_time", ev.Time)
	}
	endAnchor, endOK := firstArrival(arrivals, policy.EndPhase, delta)
	if !endOK {
		r.logger.Error("did not find endphase",
			"phase", policy.EndPhase, "channel", key.String(), "delta", delta, "event_time", ev.Time)
	}
	if !startOK || !endOK {
		return skipped(), nil
	}

	start := offsetFrom(ev.Time, startAnchor, policy.StartOffset)
	end := offsetFrom(ev.Time, endAnchor, policy.EndOffset)

	// The probe used a degenerate range; the size estimate and even the
	// channel's existence must be re-checked at the concrete window.
	info, err := r.cache.StreamInfo(ctx, start, end, key)
	if err != nil {
		return outcome{}, err
	}
	if info == nil {
		return skipped(), nil
	}
	return outcome{
		resolved: true,
		window:   contracts.TimeWindow{Start: start, End: end, Key: key, Size: info.Size},
	}, nil
}

// offsetFrom places one window edge: the anchor's travel time plus the
// offset in minutes, counted from the event origin time.
func offsetFrom(eventTime time.Time, anchorSeconds, offsetMinutes float64) time.Time {
	return eventTime.Add(time.Duration((anchorSeconds + offsetMinutes*60) * float64(time.Second)))
}
