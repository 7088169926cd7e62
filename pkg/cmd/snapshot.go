package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/Death4two/TuxTimings/pkg/exporting"
)

// Snapshot runs one poll cycle and prints the full snapshot as JSON,
// to stdout or to -output.
func Snapshot(args []string) {
	ctx := InitCmd("snapshot", args)
	cfg := ctx.Config

	snap := ctx.Manager.Snapshot()

	var out interface{} = snap
	if cfg.Flatten {
		out = exporting.FlattenRecord(ctx.Manager.Record(snap))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal snapshot: %v", err)
	}

	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, data, 0o644); err != nil {
			log.Fatalf("Failed to write file: %v", err)
		}
		log.Printf("Wrote snapshot to %s", cfg.OutputFile)
	} else {
		fmt.Println(string(data))
	}
}
