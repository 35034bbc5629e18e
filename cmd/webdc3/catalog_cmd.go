package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
	"github.com/jordi-domingo/webdc3/pkg/inventory"
)

func runCatalogCmd(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: webdc3 catalog <phases|networktypes|sensortypes|streams> [flags]")
		return 2
	}

	switch args[0] {
	case "phases":
		return printJSON(stdout, stderr, inventory.Phases())
	case "networktypes":
		return printJSON(stdout, stderr, inventory.NetworkTypes())
	case "sensortypes":
		return printJSON(stdout, stderr, inventory.SensorTypes())
	case "streams":
		return runCatalogStreams(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown catalog: %s\n", args[0])
		return 2
	}
}

// runCatalogStreams lists inventory epochs matching a key pattern over
// a time range; empty pattern components match anything.
func runCatalogStreams(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("catalog streams", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	startRaw := fs.String("start", "", "range start (RFC 3339, required)")
	endRaw := fs.String("end", "", "range end (RFC 3339, required)")
	network := fs.String("net", "", "network code filter")
	station := fs.String("sta", "", "station code filter")
	channel := fs.String("cha", "", "channel code filter")
	location := fs.String("loc", "", "location code filter")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *startRaw == "" || *endRaw == "" {
		fmt.Fprintln(stderr, "catalog streams needs -start and -end")
		return 2
	}
	start, err := contracts.ParseTime(*startRaw)
	if err != nil {
		fmt.Fprintf(stderr, "invalid start: %v\n", err)
		return 1
	}
	end, err := contracts.ParseTime(*endRaw)
	if err != nil {
		fmt.Fprintf(stderr, "invalid end: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	setupLogging(cfg.LogLevel, stderr)

	cache, cleanup, err := buildCache(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer cleanup()

	pattern := contracts.ChannelKey{
		Network: *network, Station: *station, Channel: *channel, Location: *location,
	}
	epochs, err := cache.List(context.Background(), start, end, pattern)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return printJSON(stdout, stderr, epochs)
}

func printJSON(stdout, stderr io.Writer, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
