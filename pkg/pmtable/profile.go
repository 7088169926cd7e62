// Package pmtable decodes the SMU PM table, a firmware-refreshed array
// of 32-bit floats whose layout depends on CPU family and table
// version. Known layouts are kept as one data table of profiles;
// decode itself is family-agnostic.
package pmtable

// Field identifies a semantic quantity inside the PM table.
type Field int

const (
	FieldFCLK Field = iota
	FieldUCLK
	FieldMCLK
	FieldVSoc
	FieldVDDP
	FieldVDDGIod
	FieldVDDGCcd
	FieldVDDMisc
	FieldVCore
	FieldIodHotspot
)

// Strategy selects how a profile locates its fields.
type Strategy int

const (
	// StrategyIndexList places each named field at a known float index.
	StrategyIndexList Strategy = iota
	// StrategyByteOffset places fields at fixed byte offsets into the
	// table blob (float index = offset / 4).
	StrategyByteOffset
)

// Confidence records how well a profile's layout is understood.
// BestEffort profiles come from the fallback path for unrecognized
// platforms and may misreport values on misidentified hardware; that
// ambiguity is genuine and deliberately not hidden.
type Confidence int

const (
	Verified Confidence = iota
	BestEffort
)

func (c Confidence) String() string {
	if c == BestEffort {
		return "best-effort"
	}
	return "verified"
}

// FamilyGraniteRidge is the codename index whose byte-offset layout is
// the best understood; it doubles as the fallback profile for every
// unrecognized platform.
const FamilyGraniteRidge = 23

// IndexEntry binds one float index to a semantic field.
type IndexEntry struct {
	Index int
	Field Field
}

// Profile describes where each quantity lives in one family's PM
// table. Profiles are immutable: created once in the registry below
// and only ever read.
type Profile struct {
	Name         string
	TableVersion uint32
	Strategy     Strategy
	Confidence   Confidence

	// StrategyIndexList: scattered index/field pairs.
	Named []IndexEntry

	// StrategyByteOffset: byte offsets per field.
	Offsets map[Field]int

	VIDIndex         int
	PPTIndex         int
	SocketPowerIndex int

	CoreVoltageStart int
	CoreTempStart    int
	CoreClockStart   int // 0 when the family has no per-core clock range
	MaxCores         int

	// TdieIndices are candidate positions of the die temperature, in
	// preference order. Empty when the family does not expose it.
	TdieIndices []int

	IodHotspotIndex int
}

// graniteRidge is the default profile (ZenStates-style byte offsets).
var graniteRidge = &Profile{
	Name:       "Granite Ridge",
	Strategy:   StrategyByteOffset,
	Confidence: Verified,
	Offsets: map[Field]int{
		FieldFCLK:    0x11C,
		FieldUCLK:    0x12C,
		FieldMCLK:    0x13C,
		FieldVSoc:    0x14C,
		FieldVDDP:    0x434,
		FieldVDDGIod: 0x40C,
		FieldVDDGCcd: 0x414,
		FieldVDDMisc: 0xE8,
		FieldVCore:   0x43C,
	},
	VIDIndex:         275,
	PPTIndex:         3,
	SocketPowerIndex: 29,
	CoreVoltageStart: 309,
	CoreTempStart:    317,
	CoreClockStart:   325,
	MaxCores:         8,
	TdieIndices:      []int{448, 449},
	IodHotspotIndex:  11,
}

// graniteRidgeFallback is what unrecognized (family, version) pairs
// resolve to: the same layout, tagged so callers can surface the
// reduced confidence.
var graniteRidgeFallback = func() *Profile {
	p := *graniteRidge
	p.Confidence = BestEffort
	return &p
}()

// profiles is the registry of index-list layouts keyed by PM table
// version. Adding a family is a data change here, not a code change.
var profiles = map[uint32]*Profile{
	// Vermeer 5900X/5950X, older BIOS
	0x380804: {
		Name: "Vermeer", TableVersion: 0x380804, Confidence: Verified,
		Named: []IndexEntry{
			{11, FieldIodHotspot}, {48, FieldFCLK}, {50, FieldUCLK}, {51, FieldMCLK},
			{44, FieldVSoc}, {137, FieldVDDP}, {138, FieldVDDGIod}, {139, FieldVDDGCcd},
			{40, FieldVCore},
		},
		VIDIndex: 10, PPTIndex: 1, SocketPowerIndex: 29,
		CoreVoltageStart: 185, CoreTempStart: 201, MaxCores: 16,
		IodHotspotIndex: 11,
	},
	// Vermeer 5900X/5950X, newer BIOS
	0x380805: {
		Name: "Vermeer", TableVersion: 0x380805, Confidence: Verified,
		Named: []IndexEntry{
			{11, FieldIodHotspot}, {48, FieldFCLK}, {50, FieldUCLK}, {51, FieldMCLK},
			{44, FieldVSoc}, {137, FieldVDDP}, {138, FieldVDDGIod}, {139, FieldVDDGCcd},
			{39, FieldVCore},
		},
		VIDIndex: 10, PPTIndex: 1, SocketPowerIndex: 29,
		CoreVoltageStart: 188, CoreTempStart: 204, MaxCores: 16,
		IodHotspotIndex: 11,
	},
	// Vermeer 5600X, older BIOS
	0x380904: {
		Name: "Vermeer", TableVersion: 0x380904, Confidence: Verified,
		Named: []IndexEntry{
			{11, FieldIodHotspot}, {48, FieldFCLK}, {50, FieldUCLK}, {51, FieldMCLK},
			{44, FieldVSoc}, {137, FieldVDDP}, {138, FieldVDDGIod}, {139, FieldVDDGCcd},
			{40, FieldVCore},
		},
		VIDIndex: 10, PPTIndex: 1, SocketPowerIndex: 29,
		CoreVoltageStart: 177, CoreTempStart: 185, MaxCores: 8,
		IodHotspotIndex: 11,
	},
	// Vermeer 5600X, newer BIOS
	0x380905: {
		Name: "Vermeer", TableVersion: 0x380905, Confidence: Verified,
		Named: []IndexEntry{
			{11, FieldIodHotspot}, {48, FieldFCLK}, {50, FieldUCLK}, {51, FieldMCLK},
			{44, FieldVSoc}, {137, FieldVDDP}, {138, FieldVDDGIod}, {139, FieldVDDGCcd},
			{39, FieldVCore},
		},
		VIDIndex: 10, PPTIndex: 1, SocketPowerIndex: 29,
		CoreVoltageStart: 180, CoreTempStart: 188, MaxCores: 8,
		IodHotspotIndex: 11,
	},
	// Cezanne 5700G APU
	0x400005: {
		Name: "Cezanne", TableVersion: 0x400005, Confidence: Verified,
		Named: []IndexEntry{
			{29, FieldIodHotspot}, {409, FieldFCLK}, {410, FieldUCLK}, {411, FieldMCLK},
			{102, FieldVSoc}, {565, FieldVDDP}, {98, FieldVCore},
		},
		VIDIndex: 28, PPTIndex: 5, SocketPowerIndex: 38,
		CoreVoltageStart: 208, CoreTempStart: 216, MaxCores: 8,
		IodHotspotIndex: 29,
	},
	// Matisse 3700X/3800X
	0x240903: {
		Name: "Matisse", TableVersion: 0x240903, Confidence: Verified,
		Named: []IndexEntry{
			{11, FieldIodHotspot}, {48, FieldFCLK}, {50, FieldUCLK}, {51, FieldMCLK},
			{44, FieldVSoc}, {125, FieldVDDP}, {126, FieldVDDGIod}, {39, FieldVCore},
		},
		VIDIndex: 10, PPTIndex: 1, SocketPowerIndex: 29,
		CoreVoltageStart: 155, CoreTempStart: 163, MaxCores: 8,
		IodHotspotIndex: 11,
	},
	// Matisse 3950X
	0x240803: {
		Name: "Matisse", TableVersion: 0x240803, Confidence: Verified,
		Named: []IndexEntry{
			{11, FieldIodHotspot}, {48, FieldFCLK}, {50, FieldUCLK}, {51, FieldMCLK},
			{44, FieldVSoc}, {125, FieldVDDP}, {126, FieldVDDGIod}, {40, FieldVCore},
		},
		VIDIndex: 10, PPTIndex: 1, SocketPowerIndex: 29,
		CoreVoltageStart: 163, CoreTempStart: 179, MaxCores: 16,
		IodHotspotIndex: 11,
	},
	// Renoir 4800U APU
	0x370003: {
		Name: "Renoir", TableVersion: 0x370003, Confidence: Verified,
		Named: []IndexEntry{
			{29, FieldIodHotspot}, {371, FieldFCLK}, {372, FieldUCLK}, {373, FieldMCLK},
			{101, FieldVSoc}, {527, FieldVDDP}, {97, FieldVCore},
		},
		VIDIndex: 28, PPTIndex: 5, SocketPowerIndex: 38,
		CoreVoltageStart: 200, CoreTempStart: 208, MaxCores: 8,
		IodHotspotIndex: 29,
	},
	// Renoir v2 APU
	0x370005: {
		Name: "Renoir", TableVersion: 0x370005, Confidence: Verified,
		Named: []IndexEntry{
			{29, FieldIodHotspot}, {378, FieldFCLK}, {379, FieldUCLK}, {380, FieldMCLK},
			{101, FieldVSoc}, {534, FieldVDDP}, {97, FieldVCore},
		},
		VIDIndex: 28, PPTIndex: 5, SocketPowerIndex: 38,
		CoreVoltageStart: 207, CoreTempStart: 215, MaxCores: 8,
		IodHotspotIndex: 29,
	},
	// Raven Ridge 2500U APU
	0x1E0004: {
		Name: "Raven Ridge", TableVersion: 0x1E0004, Confidence: Verified,
		Named: []IndexEntry{
			{61, FieldIodHotspot}, {166, FieldFCLK}, {167, FieldUCLK}, {168, FieldMCLK},
			{65, FieldVSoc}, {60, FieldVDDP}, {61, FieldVCore},
		},
		VIDIndex: 57, PPTIndex: 5, SocketPowerIndex: 38,
		CoreVoltageStart: 104, CoreTempStart: 108, MaxCores: 4,
		IodHotspotIndex: 61,
	},
}

// Resolve maps a (family, table version) pair to its decode profile.
// Granite Ridge platforms always use the byte-offset layout. Anything
// not in the registry falls back to the default profile tagged
// BestEffort; resolution never fails.
func Resolve(familyIndex int, tableVersion uint32) *Profile {
	if familyIndex == FamilyGraniteRidge {
		return graniteRidge
	}
	if p, ok := profiles[tableVersion]; ok {
		return p
	}
	return graniteRidgeFallback
}
