// Package sysinfo collects the static platform inventory: processor
// identity, board and BIOS strings, AGESA version, installed memory
// modules and the reference clock. Everything here is soft: a missing
// source yields an empty field, never an error.
package sysinfo

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sys/unix"

	"github.com/Death4two/TuxTimings/pkg/probing"
	"github.com/Death4two/TuxTimings/pkg/utils"
)

// Probe reads the static inventory from sysfs and procfs. Roots are
// overridable so tests can point it at fixture trees.
type Probe struct {
	CpuinfoPath string
	DMIRoot     string
	ACPIRoot    string
	DMITables   string
	MSRPath     string
	CpufreqRoot string
}

func NewProbe() *Probe {
	return &Probe{
		CpuinfoPath: "/proc/cpuinfo",
		DMIRoot:     utils.DMIRoot,
		ACPIRoot:    "/sys/firmware/acpi/tables",
		DMITables:   "/sys/firmware/dmi/tables",
		MSRPath:     "/dev/cpu/0/msr",
		CpufreqRoot: filepath.Join(utils.CPUSysRoot, "cpu0", "cpufreq"),
	}
}

// ProcessorName returns the marketing name from /proc/cpuinfo.
func (p *Probe) ProcessorName() string {
	for _, line := range probing.FileLines(p.CpuinfoPath) {
		if !strings.HasPrefix(line, "model name") {
			continue
		}
		if _, val, ok := strings.Cut(line, ":"); ok {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

// Board reads the motherboard and BIOS identity from the DMI sysfs
// mirror and appends the AGESA version found in the firmware tables.
func (p *Probe) Board() (product, biosVersion, biosDate, agesa string) {
	product = strings.TrimSpace(probing.File(filepath.Join(p.DMIRoot, "board_name")))
	biosVersion = strings.TrimSpace(probing.File(filepath.Join(p.DMIRoot, "bios_version")))
	biosDate = strings.TrimSpace(probing.File(filepath.Join(p.DMIRoot, "bios_date")))
	agesa = p.AGESAVersion()
	return
}

// KernelInfo reports the running kernel as "sysname release arch".
func (p *Probe) KernelInfo() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	cstr := func(b []byte) string {
		if i := strings.IndexByte(string(b), 0); i >= 0 {
			return string(b[:i])
		}
		return string(b)
	}
	return fmt.Sprintf("%s %s %s", cstr(u.Sysname[:]), cstr(u.Release[:]), cstr(u.Machine[:]))
}

// TotalMemory returns the installed memory formatted as "N.n GiB".
func (p *Probe) TotalMemory() string {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil || vm.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f GiB", float64(vm.Total)/(1024*1024*1024))
}
