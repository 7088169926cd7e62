// Package graphing renders recorded telemetry into a single HTML page
// of time-series charts, grouped by sensor domain.
package graphing

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/Death4two/TuxTimings/pkg/exporting"
)

// Generator builds charts from a recorded session file.
type Generator struct {
	inputPath string
	outputDir string
	session   string
}

func NewGenerator(inputPath, outputDir, session string) (*Generator, error) {
	if inputPath == "" {
		return nil, fmt.Errorf("input path is required")
	}
	if outputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	return &Generator{
		inputPath: inputPath,
		outputDir: outputDir,
		session:   session,
	}, nil
}

// Series is the time series of one numeric metric column.
type Series struct {
	Name       string
	Timestamps []int64
	Values     []float64
}

// Generate loads the session records and writes one combined HTML page
// with a chart per metric column.
func (g *Generator) Generate() error {
	records, err := exporting.ReadAll(g.inputPath)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	if len(records) < 2 {
		return fmt.Errorf("need at least 2 records to chart, got %d", len(records))
	}

	sort.Slice(records, func(i, j int) bool {
		ti, _ := toFloat64(records[i]["timestamp"])
		tj, _ := toFloat64(records[j]["timestamp"])
		return ti < tj
	})

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	seriesMap := buildSeries(records)
	categories := categorize(seriesMap)

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Telemetry - %s", g.session)

	added := 0
	for _, category := range categoryOrder {
		names, ok := categories[category]
		if !ok {
			continue
		}
		for _, name := range names {
			s := seriesMap[name]
			if len(s.Values) < 2 || allEqual(s.Values) {
				continue
			}
			page.AddCharts(createLineChart(s, category))
			added++
		}
	}
	if added == 0 {
		return fmt.Errorf("no charts generated, every metric was flat or absent")
	}

	outputPath := filepath.Join(g.outputDir, fmt.Sprintf("%s-graphs.html", g.session))
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}

	log.Printf("Generated graphs: %s (%d charts)", outputPath, added)
	return nil
}

// buildSeries extracts every numeric column into a time series.
// Records are flattened first so nested metrics become columns.
func buildSeries(records []exporting.Record) map[string]*Series {
	seriesMap := make(map[string]*Series)
	for _, record := range records {
		record = exporting.FlattenRecord(record)
		ts, ok := toFloat64(record["timestamp"])
		if !ok {
			continue
		}
		for key, val := range record {
			if key == "timestamp" {
				continue
			}
			v, ok := toFloat64(val)
			if !ok {
				continue
			}
			s := seriesMap[key]
			if s == nil {
				s = &Series{Name: key}
				seriesMap[key] = s
			}
			s.Timestamps = append(s.Timestamps, int64(ts))
			s.Values = append(s.Values, v)
		}
	}
	return seriesMap
}

var categoryOrder = []string{
	"Power", "Voltages", "Clocks", "Temperatures",
	"Per-core", "Memory", "Fans", "Other",
}

func categorize(seriesMap map[string]*Series) map[string][]string {
	categories := make(map[string][]string)
	for name := range seriesMap {
		cat := metricCategory(name)
		categories[cat] = append(categories[cat], name)
	}
	for cat := range categories {
		sort.Strings(categories[cat])
	}
	return categories
}

// metricCategory buckets a flattened column name by its sensor domain.
// Per-core arrays are checked first so metricsCoreTempsC3 does not land
// in Temperatures.
func metricCategory(name string) string {
	switch {
	case strings.HasPrefix(name, "metricsCore") || strings.HasPrefix(name, "metricsSpd"):
		return "Per-core"
	case strings.Contains(name, "Power") || strings.Contains(name, "Ppt") ||
		strings.Contains(name, "Current"):
		return "Power"
	case strings.HasPrefix(name, "metricsV") || strings.Contains(name, "Vdd") ||
		strings.Contains(name, "MemV"):
		return "Voltages"
	case strings.Contains(name, "Mhz") || strings.Contains(name, "Clk") ||
		strings.Contains(name, "Clock"):
		return "Clocks"
	case strings.Contains(name, "Temp") || strings.HasSuffix(name, "C") &&
		strings.HasPrefix(name, "metricsT"):
		return "Temperatures"
	case strings.HasPrefix(name, "dram") || strings.HasPrefix(name, "memory"):
		return "Memory"
	case strings.HasPrefix(name, "fans"):
		return "Fans"
	}
	return "Other"
}

func allEqual(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}

func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	}
	return 0, false
}
