// Package osstat polls the OS scheduler and cpufreq counters that feed
// per-core usage and frequency reconciliation.
package osstat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/Death4two/TuxTimings/pkg/metrics"
	"github.com/Death4two/TuxTimings/pkg/probing"
	"github.com/Death4two/TuxTimings/pkg/utils"
)

const maxLogicalCPUs = 256

// CPUTimes returns the cumulative (idle, total) scheduler time per
// logical CPU, indexed by logical CPU number. Iowait counts as idle.
func CPUTimes() map[int]metrics.CPUSample {
	stats, err := cpu.Times(true)
	if err != nil {
		return nil
	}
	samples := make(map[int]metrics.CPUSample, len(stats))
	for _, ts := range stats {
		idx, ok := logicalIndex(ts.CPU)
		if !ok {
			continue
		}
		idle := ts.Idle + ts.Iowait
		total := ts.User + ts.Nice + ts.System + ts.Idle + ts.Iowait +
			ts.Irq + ts.Softirq + ts.Steal + ts.Guest + ts.GuestNice
		if total == 0 {
			continue
		}
		samples[idx] = metrics.CPUSample{Idle: idle, Total: total}
	}
	return samples
}

func logicalIndex(name string) (int, bool) {
	s := strings.TrimPrefix(name, "cpu")
	if s == name || s == "" {
		return 0, false
	}
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 || idx >= maxLogicalCPUs {
		return 0, false
	}
	return idx, true
}

// Frequencies returns the current cpufreq frequency per logical CPU in
// MHz, indexed by logical CPU number. The scan stops at the first
// missing CPU directory past cpu0 (cpu0 itself may lack cpufreq on
// some platforms without implying the rest do).
func Frequencies() map[int]float64 {
	freqs := make(map[int]float64)
	for i := 0; i < maxLogicalCPUs; i++ {
		khz := probing.FileInt(fmt.Sprintf("%s/cpu%d/cpufreq/scaling_cur_freq", utils.CPUSysRoot, i))
		if khz <= 0 {
			if i == 0 {
				continue
			}
			break
		}
		freqs[i] = float64(khz) / 1000
	}
	return freqs
}
