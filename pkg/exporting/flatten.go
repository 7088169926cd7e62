package exporting

import (
	"strconv"
	"strings"
)

// FlattenRecord expands nested objects and arrays into prefixed
// top-level fields so every value lands in its own column:
//
//	cpu.processorName        -> cpuProcessorName
//	metrics.coreTempsC[3]    -> metricsCoreTempsC3
//	modules[0].slotLabel     -> modules0SlotLabel
//
// Scalar fields pass through unchanged. Nil values are dropped; a
// missing column already encodes absence.
func FlattenRecord(r Record) Record {
	if r == nil {
		return nil
	}
	result := make(Record, len(r)*4)
	for k, v := range r {
		flattenValue(k, v, result)
	}
	return result
}

func flattenValue(key string, v interface{}, out Record) {
	switch val := v.(type) {
	case nil:
	case map[string]interface{}:
		for k, inner := range val {
			flattenValue(key+capitalize(k), inner, out)
		}
	case []interface{}:
		for i, inner := range val {
			flattenValue(key+strconv.Itoa(i), inner, out)
		}
	default:
		out[key] = v
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
