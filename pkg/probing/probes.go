// Package probing provides low-level sysfs and procfs file probes.
//
// All probes are soft: a missing or unreadable file yields the zero
// value, never an error. Hardware sensor files come and go with driver
// load order, so absence is an expected condition here.
package probing

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// GetTimestamp returns the current time in nanoseconds.
func GetTimestamp() int64 {
	return time.Now().UnixNano()
}

// File reads a file and returns its content with trailing whitespace
// trimmed, or "" if the file is absent.
func File(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// FileBytes reads a file's raw contents, or nil if absent.
func FileBytes(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

// FileInt reads a file and parses it as int64, 0 on failure.
func FileInt(path string) int64 {
	return ParseInt64(File(path))
}

// FileFloat reads a file and parses it as float64, 0 on failure.
func FileFloat(path string) float64 {
	return ParseFloat64(File(path))
}

// FileLines reads a file into lines, nil if absent.
func FileLines(path string) []string {
	v := File(path)
	if v == "" {
		return nil
	}
	return strings.Split(v, "\n")
}

// ParseInt64 parses an int64, 0 on failure.
func ParseInt64(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseFloat64 parses a float64, 0 on failure.
func ParseFloat64(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// Exists checks if a path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir checks if a path is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
