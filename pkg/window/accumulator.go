package window

import (
	"fmt"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// Accumulator collects resolved windows and enforces the global line
// limit. The check runs after each append, so with a limit of N the
// (N+1)-th append fails; a limit of zero fails on the first. A failed
// append poisons the whole request: callers must return the error and
// discard the accumulator, never ship a truncated result.
type Accumulator struct {
	maxLines int
	windows  []contracts.TimeWindow
}

// NewAccumulator returns an accumulator capped at maxLines results.
func NewAccumulator(maxLines int) *Accumulator {
	return &Accumulator{maxLines: maxLines}
}

// TryAppend adds one window, failing with contracts.ErrTooManyLines once
// the accumulated count exceeds the limit.
func (a *Accumulator) TryAppend(w contracts.TimeWindow) error {
	a.windows = append(a.windows, w)
	if len(a.windows) > a.maxLines {
		return fmt.Errorf("%w: limit is %d lines", contracts.ErrTooManyLines, a.maxLines)
	}
	return nil
}

// Len reports the number of accumulated windows.
func (a *Accumulator) Len() int { return len(a.windows) }

// Windows returns the accumulated sequence in append order.
func (a *Accumulator) Windows() []contracts.TimeWindow { return a.windows }
