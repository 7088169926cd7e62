package sysinfo

import (
	"encoding/binary"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/Death4two/TuxTimings/pkg/probing"
)

// pstate0MSR holds the P0 frequency ID and divisor on Zen parts.
const pstate0MSR = 0xC0010064

// readMSR reads one model-specific register through the msr driver.
// Returns 0 when the driver is absent or access is denied.
func (p *Probe) readMSR(reg int64) uint64 {
	fd, err := unix.Open(p.MSRPath, unix.O_RDONLY, 0)
	if err != nil {
		return 0
	}
	defer unix.Close(fd)

	buf := make([]byte, 8)
	n, err := unix.Pread(fd, buf, reg)
	if err != nil || n != 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(buf)
}

// BCLK derives the reference clock from the P0 P-state multiplier and
// the reported maximum core frequency. CpuFid and CpuDfsId give the
// P0 multiplier as (fid/dfs)*2; the reference clock is the max boost
// frequency divided by that multiplier. Values outside 80 to 120 MHz
// mean the derivation did not hold and zero is returned.
func (p *Probe) BCLK() float64 {
	msr := p.readMSR(pstate0MSR)
	if msr == 0 {
		return 0
	}
	fid := msr & 0xFF
	dfs := (msr >> 8) & 0x3F
	if fid == 0 || dfs == 0 {
		return 0
	}
	mult := float64(fid) / float64(dfs) * 2.0
	if mult <= 0.1 || mult > 200.0 {
		return 0
	}

	var refMHz float64
	for _, name := range []string{"cpuinfo_max_freq", "scaling_max_freq", "scaling_cur_freq"} {
		if khz := probing.FileInt(filepath.Join(p.CpufreqRoot, name)); khz > 0 {
			refMHz = float64(khz) / 1000.0
			break
		}
	}
	if refMHz <= 0 {
		return 0
	}

	bclk := refMHz / mult
	if bclk < 80.0 || bclk > 120.0 {
		return 0
	}
	return bclk
}
