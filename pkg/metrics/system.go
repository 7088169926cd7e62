package metrics

// MemoryType is the DRAM generation of the installed memory.
type MemoryType int

const (
	MemUnknown MemoryType = iota
	MemDDR4
	MemDDR5
	MemLPDDR4
	MemLPDDR5
)

func (t MemoryType) String() string {
	switch t {
	case MemDDR4:
		return "DDR4"
	case MemDDR5:
		return "DDR5"
	case MemLPDDR4:
		return "LPDDR4"
	case MemLPDDR5:
		return "LPDDR5"
	}
	return "Unknown"
}

// MemoryRank is the rank organization of a DIMM.
type MemoryRank int

const (
	RankSingle MemoryRank = iota
	RankDual
	RankQuad
)

func (r MemoryRank) String() string {
	switch r {
	case RankDual:
		return "DR"
	case RankQuad:
		return "QR"
	}
	return "SR"
}

// MemoryModule is the identity of one installed DIMM, recovered from
// the SMBIOS memory device table.
type MemoryModule struct {
	SlotLabel     string     `json:"slotLabel"`
	BankLocator   string     `json:"bankLocator"`
	DeviceLocator string     `json:"deviceLocator"`
	Manufacturer  string     `json:"manufacturer,omitempty"`
	PartNumber    string     `json:"partNumber,omitempty"`
	SerialNumber  string     `json:"serialNumber,omitempty"`
	CapacityBytes uint64     `json:"capacityBytes"`
	ClockSpeedMHz uint32     `json:"clockSpeedMhz"`
	Rank          MemoryRank `json:"rank"`
}

// MemoryConfig summarizes the installed memory.
type MemoryConfig struct {
	Type          MemoryType `json:"type"`
	Frequency     float64    `json:"frequencyMts"`
	TotalCapacity string     `json:"totalCapacity"`
	PartNumber    string     `json:"partNumber,omitempty"`
}

// CPUInfo identifies the processor and the telemetry firmware.
type CPUInfo struct {
	ProcessorName  string `json:"processorName"`
	Codename       string `json:"codename"`
	CodenameIndex  int    `json:"codenameIndex"`
	SMUVersion     string `json:"smuVersion"`
	PMTableVersion uint32 `json:"pmTableVersion"`
	KernelInfo     string `json:"kernelInfo"`
}

// BoardInfo identifies the motherboard and its firmware.
type BoardInfo struct {
	Motherboard  string `json:"motherboard"`
	BIOSVersion  string `json:"biosVersion"`
	BIOSDate     string `json:"biosDate"`
	AGESAVersion string `json:"agesaVersion,omitempty"`
}

// FanReading is one fan tachometer reading from the Super I/O chip.
type FanReading struct {
	Label string `json:"label"`
	RPM   int    `json:"rpm"`
}

// Snapshot is the complete output of one poll cycle, handed to the
// presentation layer.
type Snapshot struct {
	CPU     CPUInfo        `json:"cpu"`
	Board   BoardInfo      `json:"board"`
	Memory  MemoryConfig   `json:"memory"`
	Modules []MemoryModule `json:"modules,omitempty"`
	Metrics Metrics        `json:"metrics"`
	Dram    DramTimings    `json:"dram"`
	Fans    []FanReading   `json:"fans,omitempty"`
}
