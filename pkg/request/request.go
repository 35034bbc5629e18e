// Package request turns the raw name/value parameters of a window
// request into a typed Request, enforcing the mode rules: a request is
// either explicit (start, end) or event-relative (events, startphase,
// startoffset, endphase, endoffset), never a mix, never a subset.
package request

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
	"github.com/jordi-domingo/webdc3/pkg/window"
)

// Parameters is the raw parameter set as supplied by the caller.
// Presence of a name matters for mode selection even when its value is
// later rejected.
type Parameters map[string]string

// Mode selects which resolver serves the request.
type Mode int

const (
	// ModeExplicit carries a literal start/end window.
	ModeExplicit Mode = iota
	// ModeEventRelative derives windows from phase arrivals per event.
	ModeEventRelative
)

var (
	explicitParams = []string{"start", "end"}
	eventParams    = []string{"events", "startphase", "startoffset", "endphase", "endoffset"}
)

// Request is a fully parsed window request.
type Request struct {
	Mode    Mode
	Streams []contracts.ChannelKey

	// Explicit mode.
	Start time.Time
	End   time.Time

	// Event-relative mode.
	Events []contracts.Event
	Policy window.PhasePolicy
}

// DetectMode applies the mutual-exclusion rule over the supplied
// parameter names. Values are not inspected.
func DetectMode(params Parameters) (Mode, error) {
	var explicit, event int
	for _, name := range explicitParams {
		if _, ok := params[name]; ok {
			explicit++
		}
	}
	for _, name := range eventParams {
		if _, ok := params[name]; ok {
			event++
		}
	}

	switch {
	case explicit == len(explicitParams) && event == 0:
		return ModeExplicit, nil
	case event == len(eventParams) && explicit == 0:
		return ModeEventRelative, nil
	default:
		return 0, fmt.Errorf("invalid set of parameters: %w", contracts.ErrInvalidInput)
	}
}

// Parse validates and types a raw parameter set. The streams parameter
// is always required; the rest is dictated by the detected mode. All
// failures wrap contracts.ErrInvalidInput.
func Parse(params Parameters) (*Request, error) {
	streamsRaw, ok := params["streams"]
	if !ok {
		return nil, fmt.Errorf("missing streams: %w", contracts.ErrInvalidInput)
	}

	mode, err := DetectMode(params)
	if err != nil {
		return nil, err
	}

	if err := checkShape(streamsSchema, "streams", streamsRaw); err != nil {
		return nil, err
	}
	streams, err := contracts.ParseChannelKeys([]byte(streamsRaw))
	if err != nil {
		return nil, err
	}

	req := &Request{Mode: mode, Streams: streams}

	if mode == ModeExplicit {
		if req.Start, err = parseTimeParam(params, "start"); err != nil {
			return nil, err
		}
		if req.End, err = parseTimeParam(params, "end"); err != nil {
			return nil, err
		}
		return req, nil
	}

	if err := checkShape(eventsSchema, "events", params["events"]); err != nil {
		return nil, err
	}
	if req.Events, err = contracts.ParseEvents([]byte(params["events"])); err != nil {
		return nil, err
	}

	req.Policy.StartPhase = params["startphase"]
	req.Policy.EndPhase = params["endphase"]
	if req.Policy.StartOffset, err = parseFloatParam(params, "startoffset"); err != nil {
		return nil, err
	}
	if req.Policy.EndOffset, err = parseFloatParam(params, "endoffset"); err != nil {
		return nil, err
	}
	if err := req.Policy.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func parseTimeParam(params Parameters, name string) (time.Time, error) {
	t, err := contracts.ParseTime(params[name])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", name, contracts.ErrInvalidInput)
	}
	return t, nil
}

func parseFloatParam(params Parameters, name string) (float64, error) {
	v, err := strconv.ParseFloat(params[name], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, contracts.ErrInvalidInput)
	}
	return v, nil
}
