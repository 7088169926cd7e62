package exporting

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Death4two/TuxTimings/pkg/utils"
)

func init() {
	Register(&CSVFormat{})
	Register(&TSVFormat{})
}

// CSVFormat handles comma-delimited files.
type CSVFormat struct{}

func (f *CSVFormat) Name() string         { return "csv" }
func (f *CSVFormat) Extensions() []string { return []string{".csv"} }
func (f *CSVFormat) Reader() Reader       { return &DelimitedReader{delimiter: ','} }
func (f *CSVFormat) Writer() Writer       { return &DelimitedWriter{delimiter: ','} }

// TSVFormat handles tab-delimited files.
type TSVFormat struct{}

func (f *TSVFormat) Name() string         { return "tsv" }
func (f *TSVFormat) Extensions() []string { return []string{".tsv"} }
func (f *TSVFormat) Reader() Reader       { return &DelimitedReader{delimiter: '\t'} }
func (f *TSVFormat) Writer() Writer       { return &DelimitedWriter{delimiter: '\t'} }

// DelimitedReader reads CSV/TSV files written by DelimitedWriter.
type DelimitedReader struct {
	file      *os.File
	reader    *csv.Reader
	header    []string
	delimiter rune
}

func (r *DelimitedReader) Open(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	r.file = file
	r.reader = csv.NewReader(file)
	r.reader.Comma = r.delimiter
	r.reader.FieldsPerRecord = -1
	r.reader.LazyQuotes = true

	header, err := r.reader.Read()
	if err != nil {
		r.file.Close()
		return fmt.Errorf("read header: %w", err)
	}
	r.header = header
	return nil
}

func (r *DelimitedReader) Read() ([]Record, error) {
	var records []Record
	for {
		row, err := r.reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		records = append(records, r.rowToRecord(row))
	}
	return records, nil
}

// rowToRecord recovers typed values from text: ints, floats and bools
// round-trip, everything else stays a string.
func (r *DelimitedReader) rowToRecord(row []string) Record {
	record := make(Record)
	for i, val := range row {
		if i >= len(r.header) || val == "" {
			continue
		}
		key := r.header[i]
		if !strings.Contains(val, ".") {
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				record[key] = n
				continue
			}
		}
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			record[key] = f
		} else if strings.EqualFold(val, "true") {
			record[key] = true
		} else if strings.EqualFold(val, "false") {
			record[key] = false
		} else {
			record[key] = val
		}
	}
	return record
}

func (r *DelimitedReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// DelimitedWriter writes CSV/TSV files. The column set is frozen from
// the first record's keys, sorted.
type DelimitedWriter struct {
	path      string
	file      *os.File
	writer    *csv.Writer
	header    []string
	headerSet bool
	delimiter rune
	mu        sync.Mutex
}

func (w *DelimitedWriter) Init(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	w.path = path
	w.file = file
	w.writer = csv.NewWriter(file)
	w.writer.Comma = w.delimiter
	return nil
}

func (w *DelimitedWriter) Write(record Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeRow(record)
}

func (w *DelimitedWriter) WriteBatch(records []Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, r := range records {
		if err := w.writeRow(r); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	return nil
}

func (w *DelimitedWriter) writeRow(record Record) error {
	if !w.headerSet {
		w.header = make([]string, 0, len(record))
		for k := range record {
			w.header = append(w.header, k)
		}
		sort.Strings(w.header)
		if err := w.writer.Write(w.header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		w.headerSet = true
	}

	row := make([]string, len(w.header))
	for i, key := range w.header {
		if val, ok := record[key]; ok {
			row[i] = utils.FormatValue(val)
		}
	}
	return w.writer.Write(row)
}

func (w *DelimitedWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writer != nil {
		w.writer.Flush()
		return w.writer.Error()
	}
	return nil
}

func (w *DelimitedWriter) Close() error {
	if err := w.Flush(); err != nil {
		if w.file != nil {
			w.file.Close()
		}
		return err
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

func (w *DelimitedWriter) Path() string {
	return w.path
}
