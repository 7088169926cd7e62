package sysinfo

import "github.com/Death4two/TuxTimings/pkg/metrics"

// codenames maps the ryzen_smu codename index to the family name.
var codenames = map[int]string{
	1:  "Colfax",
	2:  "Renoir",
	3:  "Picasso",
	4:  "Matisse",
	5:  "Threadripper",
	6:  "Castle Peak",
	7:  "Raven Ridge",
	8:  "Raven Ridge 2",
	9:  "Summit Ridge",
	10: "Pinnacle Ridge",
	11: "Rembrandt",
	12: "Vermeer",
	13: "Vangogh",
	14: "Cezanne",
	15: "Milan",
	16: "Dali",
	17: "Luciene",
	18: "Naples",
	19: "Chagall",
	20: "Raphael",
	21: "Phoenix",
	22: "Strix Point",
	23: "Granite Ridge",
	24: "Hawk Point",
	25: "Storm Peak",
}

// Codename returns the family name for a ryzen_smu codename index.
func Codename(idx int) string {
	if name, ok := codenames[idx]; ok {
		return name
	}
	return "Unknown"
}

// MemoryTypeForCodename maps a codename index to its memory
// generation. Families without a known mapping report MemUnknown and
// skip the DRAM timing decode.
func MemoryTypeForCodename(idx int) metrics.MemoryType {
	switch idx {
	case 23:
		return metrics.MemDDR5
	case 4, 9, 10, 12, 18, 19:
		return metrics.MemDDR4
	default:
		return metrics.MemUnknown
	}
}
