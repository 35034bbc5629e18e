package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jordi-domingo/webdc3/pkg/export"
	"github.com/jordi-domingo/webdc3/pkg/observability"
	"github.com/jordi-domingo/webdc3/pkg/request"
	"github.com/jordi-domingo/webdc3/pkg/service"
	"github.com/jordi-domingo/webdc3/pkg/window"
)

func runResolveCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	paramsPath := fs.String("params", "-", "request parameter JSON file, - for stdin")
	format := fs.String("format", "json", "output format: json or csv")
	outPath := fs.String("o", "", "output file, default stdout")
	compress := fs.Bool("zstd", false, "zstd-compress the output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	setupLogging(cfg.LogLevel, stderr)

	params, err := loadParams(*paramsPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx := context.Background()

	obs, err := observability.New(ctx, &observability.Config{
		ServiceName:  "webdc3",
		Environment:  "cli",
		OTLPEndpoint: cfg.Observability.OTLPEndpoint,
		SampleRate:   cfg.Observability.SampleRate,
		Enabled:      cfg.Observability.Enabled,
		Insecure:     cfg.Observability.Insecure,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = obs.Shutdown(ctx) }()

	cache, cleanup, err := buildCache(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer cleanup()

	table, err := buildTable(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	svc := service.New(cache, table, service.Config{
		Resolver: window.Config{
			MaxLines:    cfg.Request.TotalLineLimit,
			MaxLinesSet: true,
			Workers:     cfg.Request.Workers,
		},
		Observability: obs,
	})

	windows, err := svc.Resolve(ctx, params)
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

	write := func(w io.Writer) error {
		if *format == "csv" {
			return export.WriteWindows(w, windows)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(windows)
	}
	if *compress {
		err = export.Compressed(out, write)
	} else {
		err = write(out)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// loadParams reads the parameter object. String values pass through
// verbatim; structured values (the streams and events arrays) are
// re-encoded to their JSON text, so parameter files read naturally.
func loadParams(path string) (request.Parameters, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load params: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse params: %w", err)
	}

	params := make(request.Parameters, len(raw))
	for name, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			params[name] = s
			continue
		}
		params[name] = string(value)
	}
	return params, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
