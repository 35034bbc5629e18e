// Package export renders resolved windows and station selections as the
// CSV downloads the request-preparation workflow hands to users.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// SelectionFilename is the download name for a station-selection export.
const SelectionFilename = "stationSelection.csv"

// WriteWindows renders one line per resolved window:
// start, end, network, station, channel, location, size.
// Times are RFC 3339 UTC; lines appear in the windows' order, which
// downstream tooling relies on for grouping by event.
func WriteWindows(w io.Writer, windows []contracts.TimeWindow) error {
	for _, tw := range windows {
		_, err := fmt.Fprintf(w, "%s, %s, %s, %s, %s, %s, %d\n",
			tw.Start.UTC().Format(time.RFC3339),
			tw.End.UTC().Format(time.RFC3339),
			tw.Key.Network, tw.Key.Station, tw.Key.Channel, tw.Key.Location,
			tw.Size)
		if err != nil {
			return fmt.Errorf("write window line: %w", err)
		}
	}
	return nil
}

// WriteSelection renders one "network, station, channel, location" line
// per key, the format the download dialog serves as stationSelection.csv.
func WriteSelection(w io.Writer, keys []contracts.ChannelKey) error {
	for _, key := range keys {
		_, err := fmt.Fprintf(w, "%s, %s, %s, %s\n",
			key.Network, key.Station, key.Channel, key.Location)
		if err != nil {
			return fmt.Errorf("write selection line: %w", err)
		}
	}
	return nil
}
