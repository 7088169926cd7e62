package sysinfo

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Death4two/TuxTimings/pkg/metrics"
	"github.com/Death4two/TuxTimings/pkg/probing"
)

// SMBIOS structure types and type 17 field offsets.
const (
	smbiosTypeMemoryDevice = 17
	smbiosTypeEndOfTable   = 127

	memDevSize      = 0x0C
	memDevLocator   = 0x10
	memDevBank      = 0x11
	memDevSpeed     = 0x15
	memDevMfr       = 0x17
	memDevSerial    = 0x18
	memDevPart      = 0x1A
	memDevAttrs     = 0x1B
	memDevExtSize   = 0x1C
	memDevConfSpeed = 0x20
	memDevMinFormat = 0x15
)

type smbiosStructure struct {
	typ       uint8
	formatted []byte
	strings   []string
}

// walkSMBIOS iterates the raw DMI table blob structure by structure.
// Each structure is a fixed formatted area followed by a string set
// terminated by a double NUL.
func walkSMBIOS(blob []byte, visit func(s smbiosStructure) bool) {
	off := 0
	for off+4 <= len(blob) {
		typ := blob[off]
		length := int(blob[off+1])
		if length < 4 || off+length > len(blob) {
			return
		}
		s := smbiosStructure{typ: typ, formatted: blob[off : off+length]}

		// String set: NUL-terminated strings, double NUL ends the set.
		p := off + length
		for p < len(blob) {
			end := p
			for end < len(blob) && blob[end] != 0 {
				end++
			}
			if end == p {
				p++
				break
			}
			s.strings = append(s.strings, string(blob[p:end]))
			p = end + 1
		}
		// An empty string set is encoded as two NULs.
		if len(s.strings) == 0 && p < len(blob) && blob[p] == 0 {
			p++
		}

		if !visit(s) || typ == smbiosTypeEndOfTable {
			return
		}
		off = p
	}
}

func (s smbiosStructure) str(offset int) string {
	if offset >= len(s.formatted) {
		return ""
	}
	idx := int(s.formatted[offset])
	if idx == 0 || idx > len(s.strings) {
		return ""
	}
	return strings.TrimSpace(s.strings[idx-1])
}

func (s smbiosStructure) u16(offset int) uint16 {
	if offset+2 > len(s.formatted) {
		return 0
	}
	return binary.LittleEndian.Uint16(s.formatted[offset:])
}

func (s smbiosStructure) u32(offset int) uint32 {
	if offset+4 > len(s.formatted) {
		return 0
	}
	return binary.LittleEndian.Uint32(s.formatted[offset:])
}

// memDeviceCapacity decodes the type 17 size field. Bit 15 selects KiB
// units, 0x7FFF redirects to the extended size field in MiB.
func memDeviceCapacity(s smbiosStructure) uint64 {
	size := s.u16(memDevSize)
	switch size {
	case 0, 0xFFFF:
		return 0
	case 0x7FFF:
		mib := s.u32(memDevExtSize) & 0x7FFFFFFF
		return uint64(mib) * 1024 * 1024
	}
	if size&0x8000 != 0 {
		return uint64(size&0x7FFF) * 1024
	}
	return uint64(size) * 1024 * 1024
}

func filteredIdentity(v string, rejects ...string) string {
	for _, r := range rejects {
		if strings.EqualFold(v, r) {
			return ""
		}
	}
	return v
}

// slotLabel derives a short A1/B2 style slot name from the locator
// strings. AMD boards report either "BANK n" or "P0 CHANNEL x" bank
// locators; anything else falls back to the raw locator.
func slotLabel(bank, device string, index int) string {
	var n int
	if _, err := fmt.Sscanf(strings.ToUpper(bank), "BANK %d", &n); err == nil {
		return fmt.Sprintf("%c%d", 'A'+byte(n/2), n%2+1)
	}
	var ch byte
	if _, err := fmt.Sscanf(strings.ToUpper(bank), "P0 CHANNEL %c", &ch); err == nil {
		dimm := 1
		fmt.Sscanf(strings.ToUpper(device), "DIMM %d", &dimm)
		return fmt.Sprintf("%c%d", ch, dimm)
	}
	if device != "" {
		if len(device) > 7 {
			return device[:7]
		}
		return device
	}
	if bank != "" {
		if len(bank) > 7 {
			return bank[:7]
		}
		return bank
	}
	return fmt.Sprintf("Slot %d", index)
}

// ParseMemoryModules extracts the populated memory devices from a raw
// SMBIOS table blob. Empty slots (zero capacity) are skipped.
func ParseMemoryModules(blob []byte) []metrics.MemoryModule {
	var modules []metrics.MemoryModule
	walkSMBIOS(blob, func(s smbiosStructure) bool {
		if s.typ != smbiosTypeMemoryDevice || len(s.formatted) < memDevMinFormat {
			return true
		}
		cap := memDeviceCapacity(s)
		if cap == 0 {
			return true
		}
		if len(modules) >= metrics.MaxModules {
			return false
		}

		m := metrics.MemoryModule{
			BankLocator:   s.str(memDevBank),
			DeviceLocator: s.str(memDevLocator),
			Manufacturer:  filteredIdentity(s.str(memDevMfr), "Unknown", "Not Specified"),
			PartNumber:    filteredIdentity(s.str(memDevPart), "Unknown", "NO DIMM", "Not Specified"),
			SerialNumber:  filteredIdentity(s.str(memDevSerial), "Unknown", "Not Specified", "00000000"),
			CapacityBytes: cap,
		}
		m.SlotLabel = slotLabel(m.BankLocator, m.DeviceLocator, len(modules))

		if len(s.formatted) > memDevAttrs {
			switch s.formatted[memDevAttrs] & 0x0F {
			case 4:
				m.Rank = metrics.RankQuad
			case 2:
				m.Rank = metrics.RankDual
			default:
				m.Rank = metrics.RankSingle
			}
		}

		// Prefer the configured speed over the rated one.
		if mhz := s.u16(memDevConfSpeed); mhz != 0 && mhz != 0xFFFF {
			m.ClockSpeedMHz = uint32(mhz)
		} else if mhz := s.u16(memDevSpeed); mhz != 0 && mhz != 0xFFFF {
			m.ClockSpeedMHz = uint32(mhz)
		}

		modules = append(modules, m)
		return true
	})
	return modules
}

// MemoryModules reads the installed DIMMs from the raw SMBIOS blob.
// The blob is root-only on most systems; without it the module list is
// empty and the memory summary falls back to totals.
func (p *Probe) MemoryModules() []metrics.MemoryModule {
	blob := probing.FileBytes(filepath.Join(p.DMITables, "DMI"))
	if len(blob) == 0 {
		return nil
	}
	return ParseMemoryModules(blob)
}

// PartNumbers joins the distinct module part numbers for display.
func PartNumbers(modules []metrics.MemoryModule) string {
	var parts []string
	seen := map[string]bool{}
	for _, m := range modules {
		if m.PartNumber == "" || seen[m.PartNumber] {
			continue
		}
		seen[m.PartNumber] = true
		parts = append(parts, m.PartNumber)
	}
	return strings.Join(parts, ", ")
}
