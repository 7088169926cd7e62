package graphing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Death4two/TuxTimings/pkg/exporting"
)

func writeSession(t *testing.T, records []exporting.Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.jsonl")
	e, err := exporting.NewExporter(path, "jsonl")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.ExportBatch(records); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerate(t *testing.T) {
	input := writeSession(t, []exporting.Record{
		{"timestamp": int64(1000), "metrics": map[string]interface{}{"vcore": 1.20, "pptW": 80.0}},
		{"timestamp": int64(2000), "metrics": map[string]interface{}{"vcore": 1.25, "pptW": 95.0}},
		{"timestamp": int64(3000), "metrics": map[string]interface{}{"vcore": 1.22, "pptW": 88.0}},
	})
	outDir := t.TempDir()

	g, err := NewGenerator(input, outDir, "bench-run")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Generate(); err != nil {
		t.Fatal(err)
	}

	html, err := os.ReadFile(filepath.Join(outDir, "bench-run-graphs.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "echarts") {
		t.Error("output page has no chart content")
	}
}

func TestGenerateTooFewRecords(t *testing.T) {
	input := writeSession(t, []exporting.Record{
		{"timestamp": int64(1000), "vcore": 1.2},
	})

	g, err := NewGenerator(input, t.TempDir(), "short")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Generate(); err == nil {
		t.Error("Generate succeeded with a single record")
	}
}

func TestGenerateAllFlat(t *testing.T) {
	input := writeSession(t, []exporting.Record{
		{"timestamp": int64(1000), "vcore": 1.2},
		{"timestamp": int64(2000), "vcore": 1.2},
	})

	g, err := NewGenerator(input, t.TempDir(), "flat")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Generate(); err == nil {
		t.Error("Generate succeeded with only flat series")
	}
}

func TestNewGeneratorValidation(t *testing.T) {
	if _, err := NewGenerator("", "out", "s"); err == nil {
		t.Error("NewGenerator accepted an empty input path")
	}
	if _, err := NewGenerator("in.jsonl", "", "s"); err == nil {
		t.Error("NewGenerator accepted an empty output directory")
	}
}

func TestMetricCategory(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"metricsPackagePowerW", "Power"},
		{"metricsPptW", "Power"},
		{"metricsVcore", "Voltages"},
		{"metricsMemVdd", "Voltages"},
		{"metricsFclkMhz", "Clocks"},
		{"metricsCpuTempC", "Temperatures"},
		{"metricsCoreTempsC3", "Per-core"},
		{"metricsSpdTempsC0", "Per-core"},
		{"dramTcl", "Memory"},
		{"memoryFrequencyMts", "Memory"},
		{"fans0Rpm", "Fans"},
		{"cpuCodenameIndex", "Other"},
	}
	for _, c := range cases {
		if got := metricCategory(c.name); got != c.want {
			t.Errorf("metricCategory(%q) = %q; want %q", c.name, got, c.want)
		}
	}
}

func TestBuildSeries(t *testing.T) {
	records := []exporting.Record{
		{"timestamp": int64(1), "vcore": 1.2, "host": "bench"},
		{"timestamp": int64(2), "vcore": 1.3, "host": "bench"},
	}

	series := buildSeries(records)
	s, ok := series["vcore"]
	if !ok {
		t.Fatal("vcore series missing")
	}
	if len(s.Values) != 2 || s.Values[1] != 1.3 {
		t.Errorf("vcore values = %v; want [1.2 1.3]", s.Values)
	}
	if _, ok := series["host"]; ok {
		t.Error("non-numeric column produced a series")
	}
	if _, ok := series["timestamp"]; ok {
		t.Error("timestamp column produced a series")
	}
}
