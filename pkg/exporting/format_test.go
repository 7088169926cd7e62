package exporting

import (
	"path/filepath"
	"testing"
)

func TestRegistry(t *testing.T) {
	for _, name := range []string{"jsonl", "csv", "tsv", "parquet"} {
		if _, ok := Get(name); !ok {
			t.Errorf("Get(%q) missing from registry", name)
		}
	}
	if _, ok := Get("xml"); ok {
		t.Error("Get(xml) = ok for an unregistered format")
	}

	f, ok := GetByPath("/tmp/monitor_20250830.csv")
	if !ok || f.Name() != "csv" {
		t.Errorf("GetByPath(.csv) = %v, %v; want csv format", f, ok)
	}

	if got := GetExtension("parquet"); got != ".parquet" {
		t.Errorf("GetExtension(parquet) = %q; want .parquet", got)
	}
	if got := GetExtension("bogus"); got != ".jsonl" {
		t.Errorf("GetExtension(bogus) = %q; want .jsonl default", got)
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	e, err := NewExporter(path, "jsonl")
	if err != nil {
		t.Fatal(err)
	}
	records := []Record{
		{"vcore": 1.25, "host": "testbench"},
		{"vcore": 1.31, "host": "testbench"},
	}
	if err := e.ExportBatch(records); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len(records) = %d; want 2", len(got))
	}
	if got[0]["vcore"] != 1.25 || got[1]["vcore"] != 1.31 {
		t.Errorf("vcore = %v, %v; want 1.25, 1.31", got[0]["vcore"], got[1]["vcore"])
	}
	if got[0]["host"] != "testbench" {
		t.Errorf("host = %v; want testbench", got[0]["host"])
	}
}

func TestCSVTypedReadback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	e, err := NewExporter(path, "csv")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Export(Record{
		"vcore":     1.25,
		"coreCount": int64(8),
		"gearDown":  true,
		"host":      "testbench",
	}); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("len(records) = %d; want 1", len(got))
	}
	r := got[0]
	if r["vcore"] != 1.25 {
		t.Errorf("vcore = %v (%T); want float 1.25", r["vcore"], r["vcore"])
	}
	if r["coreCount"] != int64(8) {
		t.Errorf("coreCount = %v (%T); want int64 8", r["coreCount"], r["coreCount"])
	}
	if r["gearDown"] != true {
		t.Errorf("gearDown = %v; want true", r["gearDown"])
	}
	if r["host"] != "testbench" {
		t.Errorf("host = %v; want testbench", r["host"])
	}
}

func TestExporterFlattensForDelimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested.csv")

	e, err := NewExporter(path, "csv")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Export(Record{
		"cpu": map[string]interface{}{"codenameIndex": int64(23)},
	}); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if got[0]["cpuCodenameIndex"] != int64(23) {
		t.Errorf("cpuCodenameIndex = %v; want 23 from auto-flatten", got[0]["cpuCodenameIndex"])
	}
}

func TestNewExporterUnknownFormat(t *testing.T) {
	if _, err := NewExporter(filepath.Join(t.TempDir(), "x.bin"), "bogus"); err == nil {
		t.Error("NewExporter accepted an unknown format")
	}
}
