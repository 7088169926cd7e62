package reconcile

import (
	"testing"

	"github.com/Death4two/TuxTimings/pkg/hwmon"
	"github.com/Death4two/TuxTimings/pkg/metrics"
)

func TestSensorOverlayFillsAbsentOnly(t *testing.T) {
	m := &metrics.Metrics{VSoc: 1.05}
	in := Inputs{
		Secondary: &hwmon.SecondarySensors{
			Voltages: []hwmon.Channel{
				{Label: "vddcr_soc", Value: 0.98},
				{Label: "vddio_mem", Value: 1.35},
			},
			Powers:   []hwmon.Channel{{Label: "package", Value: 95.0}},
			Currents: []hwmon.Channel{{Label: "svi2_c_core", Value: 62.0}},
		},
	}

	New().Reconcile(m, in)

	if m.VSoc != 1.05 {
		t.Errorf("VSoc = %v; want table value 1.05 kept over sensor", m.VSoc)
	}
	if m.MemVDD != 1.35 {
		t.Errorf("MemVDD = %v; want 1.35 filled from sensor", m.MemVDD)
	}
	if m.PPT != 95.0 {
		t.Errorf("PPT = %v; want 95 filled from sensor", m.PPT)
	}
	if m.PackageCurrent != 62.0 {
		t.Errorf("PackageCurrent = %v; want 62 filled from sensor", m.PackageCurrent)
	}
}

func TestSensorOverlayRejectsImplausible(t *testing.T) {
	m := &metrics.Metrics{}
	in := Inputs{
		Secondary: &hwmon.SecondarySensors{
			Voltages: []hwmon.Channel{{Label: "vsoc", Value: 9.5}},
		},
	}

	New().Reconcile(m, in)
	if m.VSoc != 0 {
		t.Errorf("VSoc = %v; want 0 for out-of-range sensor reading", m.VSoc)
	}
}

func TestMemoryRailMatching(t *testing.T) {
	m := &metrics.Metrics{}
	in := Inputs{
		Secondary: &hwmon.SecondarySensors{
			Voltages: []hwmon.Channel{
				{Label: "mem vddq", Value: 1.38},
				{Label: "mem vpp", Value: 1.8},
				{Label: "vddq aux", Value: 0.9}, // lacks "mem", must not win
			},
		},
	}

	New().Reconcile(m, in)
	if m.MemVDDQ != 1.38 {
		t.Errorf("MemVDDQ = %v; want 1.38", m.MemVDDQ)
	}
	if m.MemVPP != 1.8 {
		t.Errorf("MemVPP = %v; want 1.8", m.MemVPP)
	}
}

func TestDieTempsFromPrimarySensor(t *testing.T) {
	m := &metrics.Metrics{}
	in := Inputs{
		Die: &hwmon.DieTemps{
			Tctl:  metrics.Temp(71.5),
			Tccd1: metrics.Temp(65.0),
		},
	}

	New().Reconcile(m, in)

	if m.Tctl == nil || *m.Tctl != 71.5 {
		t.Errorf("Tctl = %v; want 71.5", m.Tctl)
	}
	if m.Tccd1 == nil || *m.Tccd1 != 65.0 {
		t.Errorf("Tccd1 = %v; want 65", m.Tccd1)
	}
	if m.Tccd2 != nil {
		t.Errorf("Tccd2 = %v; want nil when the sensor is absent", *m.Tccd2)
	}
	if m.Tdie == nil || *m.Tdie != 71.5 {
		t.Errorf("Tdie = %v; want Tctl copy 71.5", m.Tdie)
	}
}

func TestDieTempsFromSecondaryLabels(t *testing.T) {
	m := &metrics.Metrics{}
	in := Inputs{
		Secondary: &hwmon.SecondarySensors{
			Temps: []hwmon.Channel{
				{Label: "tdie", Value: 68.0},
				{Label: "tccd1", Value: 61.0},
			},
		},
	}

	New().Reconcile(m, in)
	if m.Tdie == nil || *m.Tdie != 68.0 {
		t.Errorf("Tdie = %v; want 68 from secondary label", m.Tdie)
	}
	if m.Tccd1 == nil || *m.Tccd1 != 61.0 {
		t.Errorf("Tccd1 = %v; want 61 from secondary label", m.Tccd1)
	}
}

func TestTdieFallsBackToCPUTemp(t *testing.T) {
	m := &metrics.Metrics{CPUTemp: 55.0}

	New().Reconcile(m, Inputs{})
	if m.Tdie == nil || *m.Tdie != 55.0 {
		t.Errorf("Tdie = %v; want CPUTemp copy 55", m.Tdie)
	}
}

func TestCoreTempOverlayWins(t *testing.T) {
	m := &metrics.Metrics{}
	in := Inputs{
		Die:           &hwmon.DieTemps{Tccd1: metrics.Temp(70.0)},
		CoreTemps:     map[int]float64{0: 48.0, 1: 52.0},
		PhysicalCores: 8,
	}

	New().Reconcile(m, in)

	if m.CoreTempCount != 2 {
		t.Fatalf("CoreTempCount = %d; want 2", m.CoreTempCount)
	}
	if m.CoreTemps[0] != 48.0 || m.CoreTemps[1] != 52.0 {
		t.Errorf("CoreTemps = %v; want direct readings, no CCD broadcast", m.CoreTemps[:2])
	}
}

func TestCCDBroadcast(t *testing.T) {
	m := &metrics.Metrics{}
	in := Inputs{
		Die: &hwmon.DieTemps{
			Tccd1: metrics.Temp(70.0),
			Tccd2: metrics.Temp(75.0),
		},
		PhysicalCores: 16,
	}

	New().Reconcile(m, in)

	if m.CoreTempCount != 16 {
		t.Fatalf("CoreTempCount = %d; want 16", m.CoreTempCount)
	}
	for i := 0; i < 8; i++ {
		if m.CoreTemps[i] != 70.0 {
			t.Fatalf("CoreTemps[%d] = %v; want 70 from first die", i, m.CoreTemps[i])
		}
	}
	for i := 8; i < 16; i++ {
		if m.CoreTemps[i] != 75.0 {
			t.Fatalf("CoreTemps[%d] = %v; want 75 from second die", i, m.CoreTemps[i])
		}
	}
}

func TestCCDBroadcastSingleDie(t *testing.T) {
	m := &metrics.Metrics{}
	in := Inputs{
		Die:           &hwmon.DieTemps{Tccd1: metrics.Temp(64.0)},
		PhysicalCores: 6,
	}

	New().Reconcile(m, in)
	if m.CoreTempCount != 6 {
		t.Fatalf("CoreTempCount = %d; want 6", m.CoreTempCount)
	}
	for i := 0; i < 6; i++ {
		if m.CoreTemps[i] != 64.0 {
			t.Fatalf("CoreTemps[%d] = %v; want 64", i, m.CoreTemps[i])
		}
	}
}

func TestUsageFirstSampleIsZero(t *testing.T) {
	e := New()
	m := &metrics.Metrics{}
	in := Inputs{
		CPUTimes: map[int]metrics.CPUSample{
			0: {Idle: 100, Total: 200},
			1: {Idle: 150, Total: 200},
		},
	}

	e.Reconcile(m, in)
	if m.CoreUsageCount != 1 {
		t.Fatalf("CoreUsageCount = %d; want 1 for 2 logical CPUs", m.CoreUsageCount)
	}
	if m.CoreUsage[0] != 0 {
		t.Errorf("CoreUsage[0] = %v; want 0 on the first observation", m.CoreUsage[0])
	}
}

func TestUsageAveragesSMTSiblings(t *testing.T) {
	e := New()
	first := Inputs{
		CPUTimes: map[int]metrics.CPUSample{
			0: {Idle: 0, Total: 0},
			1: {Idle: 0, Total: 0},
			2: {Idle: 0, Total: 0},
			3: {Idle: 0, Total: 0},
		},
	}
	e.Reconcile(&metrics.Metrics{}, first)

	// Core 0 siblings: 50% and 100% busy. Core 1 siblings: idle.
	second := Inputs{
		CPUTimes: map[int]metrics.CPUSample{
			0: {Idle: 50, Total: 100},
			1: {Idle: 0, Total: 100},
			2: {Idle: 100, Total: 100},
			3: {Idle: 100, Total: 100},
		},
	}
	m := &metrics.Metrics{}
	e.Reconcile(m, second)

	if m.CoreUsageCount != 2 {
		t.Fatalf("CoreUsageCount = %d; want 2", m.CoreUsageCount)
	}
	if m.CoreUsage[0] != 75.0 {
		t.Errorf("CoreUsage[0] = %v; want 75 (average of 50 and 100)", m.CoreUsage[0])
	}
	if m.CoreUsage[1] != 0 {
		t.Errorf("CoreUsage[1] = %v; want 0", m.CoreUsage[1])
	}
}

func TestFrequencyPairing(t *testing.T) {
	m := &metrics.Metrics{}
	in := Inputs{
		Freqs: map[int]float64{0: 4500, 1: 4300, 2: 3600},
	}

	New().Reconcile(m, in)

	if m.CoreFreqCount != 2 {
		t.Fatalf("CoreFreqCount = %d; want 2", m.CoreFreqCount)
	}
	if m.CoreFreq[0] != 4400 {
		t.Errorf("CoreFreq[0] = %v; want 4400 (sibling average)", m.CoreFreq[0])
	}
	if m.CoreFreq[1] != 3600 {
		t.Errorf("CoreFreq[1] = %v; want 3600 from the lone sibling", m.CoreFreq[1])
	}
}

func TestUsageClamped(t *testing.T) {
	s := metrics.NewCoreUsageState()
	s.Update(0, metrics.CPUSample{Idle: 100, Total: 100})

	// Idle going backwards would compute above 100%.
	if got := s.Update(0, metrics.CPUSample{Idle: 50, Total: 200}); got != 100 {
		t.Errorf("usage = %v; want clamp at 100", got)
	}

	s.Update(1, metrics.CPUSample{Idle: 0, Total: 100})
	// No scheduler progress yields 0, not a division by zero.
	if got := s.Update(1, metrics.CPUSample{Idle: 0, Total: 100}); got != 0 {
		t.Errorf("usage = %v; want 0 for zero elapsed total", got)
	}
}
