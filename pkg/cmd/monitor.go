package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Death4two/TuxTimings/pkg/exporting"
	"github.com/Death4two/TuxTimings/pkg/graphing"
	"github.com/Death4two/TuxTimings/pkg/utils"
)

// Monitor polls on the configured interval until interrupted, writing
// each sample to the session file. Batch mode holds samples in memory
// and writes them at the end; stream mode (the default) writes as it
// goes.
func Monitor(args []string) {
	ctx := InitCmd("monitor", args)
	cfg := ctx.Config

	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile("monitor", cfg.Format)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	if cfg.Batch {
		runBatchMode(runCtx, ctx, cfg)
	} else {
		runStreamMode(runCtx, ctx, cfg)
	}

	if cfg.Graphs {
		generateGraphs(cfg.OutputFile, cfg.GraphDir, cfg.UUID)
	}
}

func runStreamMode(runCtx context.Context, ctx *CmdContext, cfg *utils.Config) {
	exporter, err := exporting.NewExporter(cfg.OutputFile, cfg.Format,
		exporting.WithFlatten(cfg.Flatten || cfg.Format != "jsonl"))
	if err != nil {
		log.Fatalf("Failed to create exporter: %v", err)
	}
	defer exporter.Close()

	log.Printf("Monitor started (stream mode)")
	log.Printf("  Output: %s", cfg.OutputFile)
	log.Printf("  Format: %s", cfg.Format)
	log.Printf("  Interval: %dms", cfg.Interval)

	ticker := time.NewTicker(time.Duration(cfg.Interval) * time.Millisecond)
	defer ticker.Stop()

	count := 0
	start := time.Now()

	for {
		select {
		case <-runCtx.Done():
			exporter.Flush()
			elapsed := time.Since(start)
			log.Printf("Collected %d samples in %v (%.2f samples/sec)",
				count, elapsed, float64(count)/elapsed.Seconds())
			return

		case <-ticker.C:
			record := ctx.Manager.Record(ctx.Manager.Snapshot())
			if err := exporter.Export(record); err != nil {
				log.Printf("Write error: %v", err)
				continue
			}
			count++
			if count%50 == 0 {
				exporter.Flush()
				log.Printf("Progress: %d samples", count)
			}
		}
	}
}

func runBatchMode(runCtx context.Context, ctx *CmdContext, cfg *utils.Config) {
	log.Printf("Monitor started (batch mode)")
	log.Printf("  Interval: %dms", cfg.Interval)

	ticker := time.NewTicker(time.Duration(cfg.Interval) * time.Millisecond)
	defer ticker.Stop()

	var records []exporting.Record
	start := time.Now()

	for {
		select {
		case <-runCtx.Done():
			log.Printf("Collected %d samples in %v", len(records), time.Since(start))
			exporter, err := exporting.NewExporter(cfg.OutputFile, cfg.Format,
				exporting.WithFlatten(cfg.Flatten || cfg.Format != "jsonl"))
			if err != nil {
				log.Fatalf("Failed to create exporter: %v", err)
			}
			if err := exporter.ExportBatch(records); err != nil {
				log.Fatalf("Failed to write samples: %v", err)
			}
			if err := exporter.Close(); err != nil {
				log.Fatalf("Failed to finalize output: %v", err)
			}
			log.Printf("Wrote %d samples to %s", len(records), cfg.OutputFile)
			return

		case <-ticker.C:
			records = append(records, ctx.Manager.Record(ctx.Manager.Snapshot()))
			if len(records)%100 == 0 {
				log.Printf("Progress: %d samples (in memory)", len(records))
			}
		}
	}
}

func generateGraphs(inputPath, outputDir, session string) {
	gen, err := graphing.NewGenerator(inputPath, graphDirFor(inputPath, outputDir), session)
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	if err := gen.Generate(); err != nil {
		log.Printf("Warning: failed to generate graphs: %v", err)
	}
}
