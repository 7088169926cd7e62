package pmtable

import (
	"github.com/Death4two/TuxTimings/pkg/metrics"
	"github.com/Death4two/TuxTimings/pkg/utils"
)

// Candidate float indices for quantities whose exact home varies by
// firmware. These are probed in order and the first plausible value
// wins; misses mean the quantity stays absent.
var (
	pptCandidates     = []int{3, 1, 13, 29, 5, 38}
	powerCandidates   = []int{29, 1, 13, 38, 5, 220, 187, 42, 0}
	currentCandidates = []int{41, 46, 3, 10, 11, 4}
	tempCandidates    = []int{1, 448, 449}
)

// get reads the float at idx, or 0 when idx is outside the table. The
// blob length is driver-dependent and may be shorter than any profile
// expects; out-of-bounds indices read as absent, never fault.
func get(table []float32, idx int) float64 {
	if idx < 0 || idx >= len(table) {
		return 0
	}
	return float64(table[idx])
}

// AllZero reports whether every float in the table is zero. The
// transport occasionally hands back a fully zeroed refresh; callers
// re-acquire once when that happens on a table long enough to matter.
func AllZero(table []float32) bool {
	for _, v := range table {
		if v != 0 {
			return false
		}
	}
	return true
}

// Decode applies a profile to a raw PM table and returns the partial
// metrics it yields. Every field is plausibility-filtered; rejected or
// out-of-bounds reads leave the field at its absent sentinel. The
// table is never mutated, so decoding the same table twice with the
// same profile is bit-identical.
func Decode(p *Profile, table []float32) *metrics.Metrics {
	m := &metrics.Metrics{}
	if len(table) < 4 {
		return m
	}

	switch p.Strategy {
	case StrategyByteOffset:
		for field, off := range p.Offsets {
			assignField(m, field, get(table, off/4))
		}
	default:
		for _, e := range p.Named {
			assignField(m, e.Field, get(table, e.Index))
		}
	}

	readCoreArrays(p, table, m)

	if v := get(table, p.VIDIndex); v > 0 {
		m.VID = v
	}

	if v := get(table, p.PPTIndex); PlausiblePower(v) {
		m.PPT = v
	} else if v, ok := firstPlausible(table, pptCandidates, PlausiblePower); ok {
		m.PPT = v
	}

	if v := get(table, p.SocketPowerIndex); PlausiblePower(v) {
		m.PackagePower = v
	} else if v, ok := firstPlausible(table, powerCandidates, PlausiblePower); ok {
		m.PackagePower = v
	}

	if v, ok := firstPlausible(table, currentCandidates, PlausibleCurrent); ok {
		m.PackageCurrent = v
	}

	readDieTemp(p, table, m)

	if m.IodHotspot == nil && p.IodHotspotIndex > 0 {
		if v := get(table, p.IodHotspotIndex); PlausibleTemperature(v) {
			m.IodHotspot = metrics.Temp(v)
		}
	}

	// Peak per-core clock doubles as the package core clock on
	// platforms that report per-core clocks in GHz.
	if m.CoreClockCount > 0 {
		peak := 0.0
		for i := 0; i < m.CoreClockCount; i++ {
			if m.CoreClocks[i] > peak {
				peak = m.CoreClocks[i]
			}
		}
		if c, ok := NormalizeClock(peak); ok {
			m.CoreClock = c
		}
	}

	return m
}

// assignField writes one named table value through its quantity's
// plausibility filter.
func assignField(m *metrics.Metrics, field Field, v float64) {
	switch field {
	case FieldFCLK:
		if c, ok := NormalizeClock(v); ok {
			m.FCLK = c
		}
	case FieldUCLK:
		if c, ok := NormalizeClock(v); ok {
			m.UCLK = c
		}
	case FieldMCLK:
		if c, ok := NormalizeClock(v); ok {
			m.MCLK = c
		}
	case FieldVSoc:
		if PlausibleVoltage(v) {
			m.VSoc = v
		}
	case FieldVDDP:
		if PlausibleVoltage(v) {
			m.VDDP = v
		}
	case FieldVDDGIod:
		if PlausibleVoltage(v) {
			m.VDDGIod = v
		}
	case FieldVDDGCcd:
		if PlausibleVoltage(v) {
			m.VDDGCcd = v
		}
	case FieldVDDMisc:
		if PlausibleVoltage(v) {
			m.VDDMisc = v
		}
	case FieldVCore:
		if PlausibleVoltage(v) {
			m.VCore = v
		}
	case FieldIodHotspot:
		if PlausibleTemperature(v) {
			m.IodHotspot = metrics.Temp(v)
		}
	}
}

// readCoreArrays copies the contiguous per-core ranges. The raw values
// are kept unfiltered; zeros in the range are legitimate parked-core
// readings and the reconciliation layer decides what to do with them.
func readCoreArrays(p *Profile, table []float32, m *metrics.Metrics) {
	n := p.MaxCores
	if n > metrics.MaxCores {
		n = metrics.MaxCores
	}

	if p.CoreTempStart > 0 && p.CoreTempStart+n <= len(table) {
		m.CoreTempCount = n
		for i := 0; i < n; i++ {
			m.CoreTemps[i] = get(table, p.CoreTempStart+i)
		}
	}
	if p.CoreVoltageStart > 0 && p.CoreVoltageStart+n <= len(table) {
		m.CoreVoltageCount = n
		for i := 0; i < n; i++ {
			m.CoreVoltages[i] = get(table, p.CoreVoltageStart+i)
		}
	}

	// The per-core clock range is 16 wide regardless of core count on
	// the layouts that expose it.
	if p.CoreClockStart > 0 && p.CoreClockStart+16 <= len(table) {
		m.CoreClockCount = 16
		for i := 0; i < 16; i++ {
			m.CoreClocks[i] = get(table, p.CoreClockStart+i)
		}
	}
}

// readDieTemp fills the die temperature from the profile's candidate
// indices, averaging the pair when neither alone is plausible but both
// read non-zero, then falls back to the generic temperature candidate
// list for the headline CPU temperature.
func readDieTemp(p *Profile, table []float32, m *metrics.Metrics) {
	if idx, ok := utils.FirstValid(p.TdieIndices, func(i int) bool {
		return PlausibleTemperature(get(table, i))
	}); ok {
		m.Tdie = metrics.Temp(get(table, idx))
	} else if len(p.TdieIndices) == 2 {
		a, b := get(table, p.TdieIndices[0]), get(table, p.TdieIndices[1])
		if a > 0 && b > 0 {
			m.Tdie = metrics.Temp((a + b) / 2)
		}
	}

	if m.Tdie != nil && *m.Tdie > 0 {
		m.CPUTemp = *m.Tdie
		return
	}
	if v, ok := firstPlausible(table, tempCandidates, PlausibleTemperature); ok {
		m.CPUTemp = v
	}
}

func firstPlausible(table []float32, candidates []int, ok func(float64) bool) (float64, bool) {
	idx, found := utils.FirstValid(candidates, func(i int) bool {
		return ok(get(table, i))
	})
	if !found {
		return 0, false
	}
	return get(table, idx), true
}
