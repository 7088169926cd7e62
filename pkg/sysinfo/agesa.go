package sysinfo

import (
	"bytes"
	"path/filepath"

	"github.com/Death4two/TuxTimings/pkg/probing"
)

// agesaMarker precedes the version string in AMD firmware images.
const agesaMarker = "AGESA!V9"

func agesaChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == ' ' || c == '.' || c == '-'
}

// FindAGESA scans a firmware blob for the AGESA version marker and
// returns the version string that follows it.
func FindAGESA(buf []byte) (string, bool) {
	i := bytes.Index(buf, []byte(agesaMarker))
	if i < 0 {
		return "", false
	}
	start := i + len(agesaMarker)
	for start < len(buf) && !agesaChar(buf[start]) {
		start++
	}
	end := start
	for end < len(buf) && agesaChar(buf[end]) {
		end++
	}
	if end == start {
		return "", false
	}
	return string(buf[start:end]), true
}

// AGESAVersion searches the ACPI tables and the raw SMBIOS blob for
// the AGESA version. Reading these needs root; without it the version
// is simply absent.
func (p *Probe) AGESAVersion() string {
	candidates := []string{
		filepath.Join(p.ACPIRoot, "DSDT"),
		filepath.Join(p.ACPIRoot, "FACP"),
		filepath.Join(p.ACPIRoot, "XSDT"),
		filepath.Join(p.ACPIRoot, "RSDT"),
		filepath.Join(p.DMITables, "DMI"),
		filepath.Join(p.DMITables, "smbios_entry_point"),
	}
	for _, path := range candidates {
		if v, ok := FindAGESA(probing.FileBytes(path)); ok {
			return v
		}
	}
	return ""
}
