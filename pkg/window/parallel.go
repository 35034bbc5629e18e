package window

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// resolveEventsParallel fans (event, channel) pairs out to a bounded
// worker group. Outcomes land in a slice indexed by canonical position,
// so the final sequence is identical to the serial resolver's. The line
// limit stays global: a shared counter of resolved pairs trips the
// moment it passes the cap, failing the group and cancelling all
// outstanding work.
func (r *Resolver) resolveEventsParallel(ctx context.Context, events []contracts.Event, keys []contracts.ChannelKey, policy PhasePolicy) ([]contracts.TimeWindow, error) {
	outcomes := make([]outcome, len(events)*len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	var resolvedCount atomic.Int64
	for i, ev := range events {
		for j, key := range keys {
			idx, ev, key := i*len(keys)+j, ev, key
			g.Go(func() error {
				out, err := r.resolvePair(gctx, ev, key, policy)
				if err != nil {
					return err
				}
				outcomes[idx] = out
				if out.resolved && resolvedCount.Add(1) > int64(r.maxLines) {
					return fmt.Errorf("%w: limit is %d lines", contracts.ErrTooManyLines, r.maxLines)
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	acc := NewAccumulator(r.maxLines)
	for _, out := range outcomes {
		if !out.resolved {
			continue
		}
		if err := acc.TryAppend(out.window); err != nil {
			return nil, err
		}
	}
	return acc.Windows(), nil
}
