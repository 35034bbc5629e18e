// Command webdc3 prepares seismic data requests: it resolves per-channel
// time windows (explicit or event-relative), serves the static request
// catalogs and exports station selections.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	_ "github.com/lib/pq" // Postgres driver for the inventory backend
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run dispatches the subcommand; split out for testing.
func Run(args []string, stdout, stderr io.Writer) int {
	// Local .env files feed the config's environment overrides.
	_ = godotenv.Load()

	if len(args) < 2 {
		printUsage(stderr)
		return 2
	}

	switch args[1] {
	case "resolve":
		return runResolveCmd(args[2:], stdout, stderr)
	case "catalog":
		return runCatalogCmd(args[2:], stdout, stderr)
	case "selection":
		return runSelectionCmd(args[2:], stdout, stderr)
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: webdc3 <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  resolve    resolve request time windows from a parameter file")
	fmt.Fprintln(w, "  catalog    print a static catalog or list inventory streams")
	fmt.Fprintln(w, "  selection  export a station selection as CSV")
	fmt.Fprintln(w, "  help       show this help")
}

// setupLogging installs the process logger at the configured level.
func setupLogging(level string, w io.Writer) {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN", "WARNING":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
}
