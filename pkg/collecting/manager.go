// Package collecting drives one full telemetry cycle: PM table read
// and decode, DRAM timing decode, sensor overlays and OS counters,
// merged into a metrics.Snapshot.
package collecting

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/Death4two/TuxTimings/pkg/dram"
	"github.com/Death4two/TuxTimings/pkg/exporting"
	"github.com/Death4two/TuxTimings/pkg/hwmon"
	"github.com/Death4two/TuxTimings/pkg/metrics"
	"github.com/Death4two/TuxTimings/pkg/osstat"
	"github.com/Death4two/TuxTimings/pkg/pmtable"
	"github.com/Death4two/TuxTimings/pkg/probing"
	"github.com/Death4two/TuxTimings/pkg/reconcile"
	"github.com/Death4two/TuxTimings/pkg/smu"
	"github.com/Death4two/TuxTimings/pkg/sysinfo"
	"github.com/Death4two/TuxTimings/pkg/utils"
)

// Manager owns the poll cycle. Snapshot is serialized by an internal
// mutex; overlapping ticks coalesce into waiting, not concurrency.
type Manager struct {
	drv    *smu.Driver
	hw     *hwmon.Probe
	sys    *sysinfo.Probe
	engine *reconcile.Engine

	codename int
	memType  metrics.MemoryType
	profile  *pmtable.Profile

	mu         sync.Mutex
	staticOnce sync.Once
	cpu        metrics.CPUInfo
	board      metrics.BoardInfo
	modules    []metrics.MemoryModule
	memory     metrics.MemoryConfig

	diagOnce sync.Once
}

func NewManager(cfg *utils.Config) *Manager {
	m := &Manager{
		drv:    smu.NewAt(cfg.SMUPath),
		hw:     hwmon.NewProbe(),
		sys:    sysinfo.NewProbe(),
		engine: reconcile.New(),
	}

	if !m.drv.Available() {
		log.Printf("ryzen_smu driver not found at %s, PM table metrics disabled", cfg.SMUPath)
	}

	m.codename = m.drv.CodenameIndex()
	m.memType = sysinfo.MemoryTypeForCodename(m.codename)
	pmVersion := m.drv.PMTableVersion()
	m.profile = pmtable.Resolve(m.codename, pmVersion)

	log.Printf("family %s (index %d), pm table 0x%08X, profile %q (%s)",
		sysinfo.Codename(m.codename), m.codename, pmVersion,
		m.profile.Name, m.profile.Confidence)
	return m
}

// collectStatic gathers the inventory that does not change between
// polls. Called once, lazily, under the poll mutex.
func (m *Manager) collectStatic() {
	m.cpu = metrics.CPUInfo{
		ProcessorName:  m.sys.ProcessorName(),
		Codename:       sysinfo.Codename(m.codename),
		CodenameIndex:  m.codename,
		SMUVersion:     m.drv.Version(),
		PMTableVersion: m.drv.PMTableVersion(),
		KernelInfo:     m.sys.KernelInfo(),
	}

	product, biosVersion, biosDate, agesa := m.sys.Board()
	m.board = metrics.BoardInfo{
		Motherboard:  product,
		BIOSVersion:  biosVersion,
		BIOSDate:     biosDate,
		AGESAVersion: agesa,
	}

	m.modules = m.sys.MemoryModules()
	m.memory = metrics.MemoryConfig{
		Type:          m.memType,
		TotalCapacity: m.sys.TotalMemory(),
		PartNumber:    sysinfo.PartNumbers(m.modules),
	}
}

// Snapshot runs one complete poll cycle.
func (m *Manager) Snapshot() metrics.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.staticOnce.Do(m.collectStatic)

	snap := metrics.Snapshot{
		CPU:     m.cpu,
		Board:   m.board,
		Memory:  m.memory,
		Modules: m.modules,
	}

	table := m.drv.PMTable()
	if m.profile.Strategy == pmtable.StrategyByteOffset && pmtable.AllZero(table) && len(table) > 0 {
		// Byte-offset tables occasionally read all zero right after the
		// driver refreshes them. One immediate re-read recovers that.
		table = m.drv.PMTable()
	}

	var met *metrics.Metrics
	if len(table) == 0 || pmtable.AllZero(table) {
		m.captureDiagnostic(table)
		met = &metrics.Metrics{}
	} else {
		met = pmtable.Decode(m.profile, table)
	}

	met.BCLK = m.sys.BCLK()

	for i, t := range m.hw.SpdTemps() {
		if i >= metrics.MaxModules {
			break
		}
		met.SpdTemps[i] = t
		met.SpdTempCount = i + 1
	}

	times := osstat.CPUTimes()
	logical := 0
	for cpu := range times {
		if cpu >= logical {
			logical = cpu + 1
		}
	}
	m.engine.Reconcile(met, reconcile.Inputs{
		Secondary:     m.hw.Zenpower(),
		Die:           m.hw.K10Temp(),
		CoreTemps:     m.hw.CoreTemps(),
		CPUTimes:      times,
		Freqs:         osstat.Frequencies(),
		PhysicalCores: (logical + 1) / 2,
	})

	switch m.memType {
	case metrics.MemDDR5:
		snap.Dram = *dram.DecodeDDR5(m.drv)
	case metrics.MemDDR4:
		snap.Dram = *dram.DecodeDDR4(m.drv)
	}

	snap.Memory.Frequency = snap.Dram.Frequency
	if snap.Memory.Frequency == 0 && m.memType == metrics.MemDDR4 && met.MCLK > 0 {
		snap.Memory.Frequency = met.MCLK
	}

	snap.Metrics = *met
	snap.Fans = m.hw.Fans()
	return snap
}

// Record converts a snapshot to the flat export form: static identity
// merged with the poll's metrics, timestamped.
func (m *Manager) Record(snap metrics.Snapshot) exporting.Record {
	record := structToRecord(snap)
	record["timestamp"] = probing.GetTimestamp()
	return record
}

func structToRecord(v interface{}) exporting.Record {
	data, _ := json.Marshal(v)
	var result exporting.Record
	json.Unmarshal(data, &result)
	return result
}
