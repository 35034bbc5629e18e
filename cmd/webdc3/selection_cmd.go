package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
	"github.com/jordi-domingo/webdc3/pkg/export"
)

// runSelectionCmd validates a stream list and writes it as the
// stationSelection.csv download format.
func runSelectionCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("selection", flag.ContinueOnError)
	fs.SetOutput(stderr)
	streamsPath := fs.String("streams", "-", "streams JSON file, - for stdin")
	outPath := fs.String("o", "", "output file, default stdout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var data []byte
	var err error
	if *streamsPath == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*streamsPath)
	}
	if err != nil {
		fmt.Fprintf(stderr, "load streams: %v\n", err)
		return 1
	}

	keys, err := contracts.ParseChannelKeys(data)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	out, closeOut, err := openOutput(*outPath, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeOut()

	if err := export.WriteSelection(out, keys); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
