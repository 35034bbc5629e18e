package contracts

import "time"

// StreamInfo is what the inventory reports for a channel over a time
// range: where the instrument sits and roughly how many bytes the range
// would yield. A nil *StreamInfo means the channel is not defined over
// the range; that is an expected outcome, not an error.
type StreamInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
	Size      int64   `json:"size"`
}

// Site projects the stream onto its travel-time site.
func (s StreamInfo) Site() Site {
	return Site{Latitude: s.Latitude, Longitude: s.Longitude, Elevation: s.Elevation}
}

// PhaseArrival is one predicted arrival: the phase name and its travel
// time in seconds after the event origin time.
type PhaseArrival struct {
	Phase string  `json:"phase"`
	Time  float64 `json:"time"`
}

// TimeWindow is the unit the engine emits: the data segment to request
// for one channel, plus the inventory's size estimate for it.
type TimeWindow struct {
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Key   ChannelKey `json:"channel"`
	Size  int64      `json:"size"`
}
