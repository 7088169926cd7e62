// Package exporting persists telemetry records in line, delimited and
// columnar formats behind a common registry.
package exporting

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Record is one flattened telemetry sample keyed by field name.
type Record = map[string]interface{}

// Format couples a named on-disk format with its reader and writer.
type Format interface {
	Name() string
	Extensions() []string
	Reader() Reader
	Writer() Writer
}

// Reader loads records back from a file, for graph generation.
type Reader interface {
	Open(path string) error
	Read() ([]Record, error)
	Close() error
}

// Writer appends records to a file.
type Writer interface {
	Init(path string) error
	Write(record Record) error
	WriteBatch(records []Record) error
	Flush() error
	Close() error
	Path() string
}

var (
	registry    = make(map[string]Format)
	extRegistry = make(map[string]Format)
)

// Register adds a format to the registry. Called from format init
// functions.
func Register(f Format) {
	registry[strings.ToLower(f.Name())] = f
	for _, ext := range f.Extensions() {
		extRegistry[strings.ToLower(ext)] = f
	}
}

// Get returns a format by name.
func Get(name string) (Format, bool) {
	f, ok := registry[strings.ToLower(name)]
	return f, ok
}

// GetByPath returns a format matching the file's extension.
func GetByPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extRegistry[ext]
	return f, ok
}

// GetExtension returns the file extension for a format name.
func GetExtension(format string) string {
	if f, ok := Get(format); ok {
		if exts := f.Extensions(); len(exts) > 0 {
			return exts[0]
		}
	}
	return ".jsonl"
}

// ReadAll loads every record from a file, resolving the format from
// the extension.
func ReadAll(path string) ([]Record, error) {
	f, ok := GetByPath(path)
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
	r := f.Reader()
	if err := r.Open(path); err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Read()
}
