package exporting

import (
	"fmt"
	"os"
	"path/filepath"
)

// Exporter writes telemetry records to one output file in a chosen
// format, optionally flattening nested structures first.
type Exporter struct {
	path    string
	format  string
	writer  Writer
	flatten bool
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithFlatten makes the exporter expand nested objects and per-core
// arrays into prefixed top-level columns. Required for delimited and
// columnar formats.
func WithFlatten(on bool) ExporterOption {
	return func(e *Exporter) {
		e.flatten = on
	}
}

// NewExporter creates the output file and its format writer.
func NewExporter(path, format string, opts ...ExporterOption) (*Exporter, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	f, ok := Get(format)
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	writer := f.Writer()
	if err := writer.Init(path); err != nil {
		return nil, fmt.Errorf("initialize %s writer: %w", format, err)
	}

	e := &Exporter{
		path:   path,
		format: format,
		writer: writer,
		// Column-oriented outputs only make sense flat.
		flatten: format != "jsonl",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Exporter) Export(record Record) error {
	if e.flatten {
		record = FlattenRecord(record)
	}
	return e.writer.Write(record)
}

func (e *Exporter) ExportBatch(records []Record) error {
	if e.flatten {
		flat := make([]Record, len(records))
		for i, r := range records {
			flat[i] = FlattenRecord(r)
		}
		records = flat
	}
	return e.writer.WriteBatch(records)
}

func (e *Exporter) Flush() error {
	return e.writer.Flush()
}

func (e *Exporter) Close() error {
	return e.writer.Close()
}

func (e *Exporter) Path() string {
	return e.path
}
