package utils

import (
	"flag"
	"os"

	"github.com/google/uuid"
)

// Config carries the shared settings of all subcommands.
type Config struct {
	Interval   int
	Format     string
	OutputFile string
	Flatten    bool
	Batch      bool
	Stream     bool
	Graphs     bool
	GraphDir   string
	Port       int
	SMUPath    string
	UUID       string
	Hostname   string
}

func NewConfig() *Config {
	return &Config{
		Interval: 1000,
		Port:     8080,
		Format:   "jsonl",
		SMUPath:  SMUDriverPath,
		UUID:     uuid.New().String(),
		Hostname: GetHostname(),
	}
}

// GetFlags registers the shared flags on a subcommand flag set.
func GetFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Interval, "interval", cfg.Interval, "Poll interval (ms)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format: jsonl, parquet, csv, tsv")
	fs.StringVar(&cfg.OutputFile, "output", "", "Output file path")
	fs.BoolVar(&cfg.Flatten, "flatten", false, "Flatten nested structures in records")
	fs.BoolVar(&cfg.Batch, "batch", false, "Batch mode: collect in memory, write at end")
	fs.BoolVar(&cfg.Stream, "stream", false, "Stream mode: write each record directly (default)")
	fs.BoolVar(&cfg.Graphs, "graphs", false, "Generate graphs after collection")
	fs.StringVar(&cfg.GraphDir, "graph-dir", "", "Graph output directory")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	fs.StringVar(&cfg.SMUPath, "smu-path", cfg.SMUPath, "ryzen_smu sysfs directory")
}

func GetHostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
