package cmd

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Death4two/TuxTimings/pkg/graphing"
	"github.com/Death4two/TuxTimings/pkg/utils"
)

// Graph renders charts from a recorded session file.
func Graph(args []string) {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	var outputDir string
	fs.StringVar(&outputDir, "output", "", "Output directory for graphs")
	fs.Parse(args)

	if fs.NArg() < 1 {
		log.Fatal("Input file required. Usage: tuxtimings graph [flags] <input-file>")
	}

	inputFile := fs.Arg(0)
	if _, err := os.Stat(inputFile); err != nil {
		log.Fatalf("Input file not found: %s", inputFile)
	}

	outputDir = graphDirFor(inputFile, outputDir)
	log.Printf("Generating graphs from %s into %s", inputFile, outputDir)

	gen, err := graphing.NewGenerator(inputFile, outputDir, utils.GetHostname())
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}
	if err := gen.Generate(); err != nil {
		log.Fatalf("Failed to generate graphs: %v", err)
	}
}

// graphDirFor derives the graph directory from the input name when no
// explicit directory was given.
func graphDirFor(inputPath, outputDir string) string {
	if outputDir != "" {
		return outputDir
	}
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_graphs"
}
