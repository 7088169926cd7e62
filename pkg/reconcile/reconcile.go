// Package reconcile merges the PM table decode with the secondary
// sensor overlays and OS counters into one snapshot per poll.
//
// The precedence between sources is empirical: the PM table is
// authoritative where it answered, zenpower fills voltage/current/power
// gaps, k10temp then zenpower supply the die temperatures, and per-core
// usage/frequency always come from the OS. The overlay order is kept as
// an explicit rule list so the precedence itself is data.
package reconcile

import (
	"github.com/Death4two/TuxTimings/pkg/hwmon"
	"github.com/Death4two/TuxTimings/pkg/metrics"
	"github.com/Death4two/TuxTimings/pkg/pmtable"
)

// Inputs are the overlay sources of one reconciliation pass. Any of
// them may be nil/empty; missing sources simply leave fields absent.
type Inputs struct {
	// Secondary is the zenpower channel set.
	Secondary *hwmon.SecondarySensors
	// Die is the k10temp (primary) die sensor set.
	Die *hwmon.DieTemps
	// CoreTemps are hwmon per-core readings keyed by core index.
	CoreTemps map[int]float64
	// CPUTimes are cumulative scheduler samples per logical CPU.
	CPUTimes map[int]metrics.CPUSample
	// Freqs are current frequencies per logical CPU in MHz.
	Freqs map[int]float64
	// PhysicalCores is the core count used for CCD broadcast.
	PhysicalCores int
}

// Engine applies the overlay chain. It owns the cross-poll usage
// state; construct one Engine per polling loop and reuse it.
type Engine struct {
	usage *metrics.CoreUsageState
}

func New() *Engine {
	return &Engine{usage: metrics.NewCoreUsageState()}
}

// UsageState exposes the engine's cross-poll state for tests that need
// to seed a prior sample.
func (e *Engine) UsageState() *metrics.CoreUsageState {
	return e.usage
}

// overlayRule fills one metric field from a secondary sensor channel,
// but only when the PM table left the field absent and the reading
// passes the field's plausibility filter.
type overlayRule struct {
	name    string
	lookup  func(s *hwmon.SecondarySensors) (float64, bool)
	valid   func(v float64) bool
	present func(m *metrics.Metrics) bool
	assign  func(m *metrics.Metrics, v float64)
}

var sensorRules = []overlayRule{
	{
		name: "vsoc",
		lookup: func(s *hwmon.SecondarySensors) (float64, bool) {
			return hwmon.Match(s.Voltages, "vddcr_soc", "vsoc", "svi2_soc")
		},
		valid:   pmtable.PlausibleVoltage,
		present: func(m *metrics.Metrics) bool { return m.VSoc != 0 },
		assign:  func(m *metrics.Metrics, v float64) { m.VSoc = v },
	},
	{
		name: "memVdd",
		lookup: func(s *hwmon.SecondarySensors) (float64, bool) {
			return hwmon.Match(s.Voltages, "vddio_mem", "vddmem", "mem vdd")
		},
		valid:   pmtable.PlausibleVoltage,
		present: func(m *metrics.Metrics) bool { return m.MemVDD != 0 },
		assign:  func(m *metrics.Metrics, v float64) { m.MemVDD = v },
	},
	{
		name: "memVddq",
		lookup: func(s *hwmon.SecondarySensors) (float64, bool) {
			return hwmon.MatchAll(s.Voltages, "vddq", "mem")
		},
		valid:   pmtable.PlausibleVoltage,
		present: func(m *metrics.Metrics) bool { return m.MemVDDQ != 0 },
		assign:  func(m *metrics.Metrics, v float64) { m.MemVDDQ = v },
	},
	{
		name: "memVpp",
		lookup: func(s *hwmon.SecondarySensors) (float64, bool) {
			return hwmon.MatchAll(s.Voltages, "vpp", "mem")
		},
		valid:   pmtable.PlausibleVoltage,
		present: func(m *metrics.Metrics) bool { return m.MemVPP != 0 },
		assign:  func(m *metrics.Metrics, v float64) { m.MemVPP = v },
	},
	{
		name: "ppt",
		lookup: func(s *hwmon.SecondarySensors) (float64, bool) {
			return hwmon.Match(s.Powers, "rapl", "package")
		},
		valid:   pmtable.PlausiblePower,
		present: func(m *metrics.Metrics) bool { return m.PPT != 0 },
		assign:  func(m *metrics.Metrics, v float64) { m.PPT = v },
	},
	{
		name: "packageCurrent",
		lookup: func(s *hwmon.SecondarySensors) (float64, bool) {
			return hwmon.Match(s.Currents, "core", "svi2_c_core")
		},
		valid:   pmtable.PlausibleCurrent,
		present: func(m *metrics.Metrics) bool { return m.PackageCurrent != 0 },
		assign:  func(m *metrics.Metrics, v float64) { m.PackageCurrent = v },
	},
}

// Reconcile merges the overlay sources into the PM table partial. The
// partial is modified in place and returned. Passes must not overlap;
// the engine is not reentrant.
func (e *Engine) Reconcile(m *metrics.Metrics, in Inputs) *metrics.Metrics {
	if in.Secondary != nil {
		for _, rule := range sensorRules {
			if rule.present(m) {
				continue
			}
			if v, ok := rule.lookup(in.Secondary); ok && rule.valid(v) {
				rule.assign(m, v)
			}
		}
	}

	applyDieTemps(m, in.Die, in.Secondary)
	applyCoreTemps(m, in)
	e.applyUsage(m, in)

	return m
}

// applyDieTemps runs the temperature fallback chain: primary die
// sensors, then like-named secondary channels, then the control
// temperature or headline CPU temperature as a die approximation.
func applyDieTemps(m *metrics.Metrics, die *hwmon.DieTemps, secondary *hwmon.SecondarySensors) {
	if die != nil {
		if die.Tctl != nil {
			m.Tctl = die.Tctl
		}
		if die.Tccd1 != nil {
			m.Tccd1 = die.Tccd1
		}
		if die.Tccd2 != nil {
			m.Tccd2 = die.Tccd2
		}
	} else if secondary != nil {
		assignTemp := func(dst **float64, labels ...string) {
			if *dst != nil {
				return
			}
			if v, ok := hwmon.Match(secondary.Temps, labels...); ok && pmtable.PlausibleTemperature(v) {
				*dst = metrics.Temp(v)
			}
		}
		assignTemp(&m.Tdie, "tdie")
		assignTemp(&m.Tctl, "tctl")
		assignTemp(&m.Tccd1, "tccd1")
		assignTemp(&m.Tccd2, "tccd2")
	}

	if m.Tdie == nil && m.Tctl != nil {
		m.Tdie = metrics.Temp(*m.Tctl)
	}
	if m.Tdie == nil && m.CPUTemp > 0 {
		m.Tdie = metrics.Temp(m.CPUTemp)
	}
}

// applyCoreTemps overlays hwmon per-core readings, then broadcasts CCD
// temperatures when the PM table produced no per-core data at all. A
// CCD's temperature stands in for every core on that die; with no CCD
// reading either, per-core temperatures stay absent.
func applyCoreTemps(m *metrics.Metrics, in Inputs) {
	for core, c := range in.CoreTemps {
		m.CoreTemps[core] = c
		if core >= m.CoreTempCount {
			m.CoreTempCount = core + 1
		}
	}

	for i := 0; i < m.CoreTempCount; i++ {
		if m.CoreTemps[i] != 0 {
			return
		}
	}

	var ccds []float64
	if m.Tccd1 != nil {
		ccds = append(ccds, *m.Tccd1)
	}
	if m.Tccd2 != nil {
		ccds = append(ccds, *m.Tccd2)
	}
	if len(ccds) == 0 || in.PhysicalCores <= 0 {
		return
	}

	cores := in.PhysicalCores
	if cores > metrics.MaxCores {
		cores = metrics.MaxCores
	}
	coresPerCcd := cores / len(ccds)
	if coresPerCcd == 0 {
		coresPerCcd = 1
	}
	for i := 0; i < cores; i++ {
		ccd := i / coresPerCcd
		if ccd > len(ccds)-1 {
			ccd = len(ccds) - 1
		}
		m.CoreTemps[i] = ccds[ccd]
	}
	m.CoreTempCount = cores
}

// applyUsage recomputes per-core usage and frequency from the OS
// counters, overwriting whatever the decode produced. Logical CPUs
// pair two-at-a-time into physical cores (SMT assumption); a core's
// value is the average of its available siblings.
func (e *Engine) applyUsage(m *metrics.Metrics, in Inputs) {
	logicalUsage := make(map[int]float64, len(in.CPUTimes))
	logicalCount := 0
	for cpu, sample := range in.CPUTimes {
		logicalUsage[cpu] = e.usage.Update(cpu, sample)
		if cpu >= logicalCount {
			logicalCount = cpu + 1
		}
	}

	if logicalCount > 0 {
		cores := (logicalCount + 1) / 2
		if cores > metrics.MaxCores {
			cores = metrics.MaxCores
		}
		for c := 0; c < cores; c++ {
			sum, cnt := 0.0, 0
			for _, l := range []int{c * 2, c*2 + 1} {
				if u, ok := logicalUsage[l]; ok {
					sum += u
					cnt++
				}
			}
			if cnt > 0 {
				m.CoreUsage[c] = sum / float64(cnt)
			} else {
				m.CoreUsage[c] = 0
			}
		}
		m.CoreUsageCount = cores
	}

	freqCount := 0
	for cpu := range in.Freqs {
		if cpu >= freqCount {
			freqCount = cpu + 1
		}
	}
	if freqCount > 0 {
		cores := (freqCount + 1) / 2
		if cores > metrics.MaxCores {
			cores = metrics.MaxCores
		}
		for c := 0; c < cores; c++ {
			sum, cnt := 0.0, 0
			for _, l := range []int{c * 2, c*2 + 1} {
				if f, ok := in.Freqs[l]; ok && f > 0 {
					sum += f
					cnt++
				}
			}
			if cnt > 0 {
				m.CoreFreq[c] = sum / float64(cnt)
			} else {
				m.CoreFreq[c] = 0
			}
		}
		m.CoreFreqCount = cores
	}
}
