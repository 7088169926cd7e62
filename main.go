package main

import (
	"fmt"
	"os"

	"github.com/Death4two/TuxTimings/pkg/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "snapshot", "ss":
		cmd.Snapshot(args)
	case "monitor", "m":
		cmd.Monitor(args)
	case "serve", "s":
		cmd.Serve(args)
	case "graph", "g":
		cmd.Graph(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`TuxTimings - AMD Ryzen telemetry and DRAM timing reader

Usage:
  tuxtimings <command> [flags]

Commands:
  snapshot, ss    Capture a single telemetry snapshot
  monitor, m      Poll continuously until Ctrl+C
  serve, s        Start HTTP/websocket telemetry server
  graph, g        Generate charts from recorded sessions

Output Flags:
  -format string       Output format: jsonl, parquet, csv, tsv (default: jsonl)
  -output string       Output file path
  -flatten             Flatten nested structures into columns
  -batch               Batch mode: collect in memory, write at end
  -stream              Stream mode: write each sample directly (default)

Graph Flags:
  -graphs              Generate graphs after collection
  -graph-dir string    Graph output directory

Monitor Flags:
  -interval int        Poll interval in ms (default: 1000)

Serve Flags:
  -port int            HTTP server port (default: 8080)

Driver Flags:
  -smu-path string     ryzen_smu sysfs directory

Examples:
  # One snapshot to stdout
  tuxtimings snapshot

  # Continuous recording
  tuxtimings monitor -interval 500 -output session.parquet

  # HTTP server with websocket stream
  tuxtimings serve -port 9090

  # Charts from a recording
  tuxtimings graph -output charts/ session.jsonl
`)
}
