package metrics

// CommandRate is the DRAM command rate reported by the memory
// controller. Empty when the platform does not expose it (DDR4).
type CommandRate string

const (
	CommandRate1T CommandRate = "1T"
	CommandRate2T CommandRate = "2T"
)

// DramTimings is the decoded timing set of one memory channel. Built
// fresh each poll and immutable afterwards. Cycle-count fields are raw
// memory-clock cycles; the *NS fields are derived nanoseconds (DDR5
// only).
type DramTimings struct {
	// Primary
	TCL    uint32 `json:"tcl"`
	TRCDRD uint32 `json:"trcdRd"`
	TRCDWR uint32 `json:"trcdWr"`
	TRP    uint32 `json:"trp"`
	TRAS   uint32 `json:"tras"`
	TRC    uint32 `json:"trc"`

	// Secondary
	TRRDS uint32 `json:"trrdS"`
	TRRDL uint32 `json:"trrdL"`
	TFAW  uint32 `json:"tfaw"`
	TWR   uint32 `json:"twr"`
	TCWL  uint32 `json:"tcwl"`
	TRTP  uint32 `json:"trtp"`
	TWTRS uint32 `json:"twtrS"`
	TWTRL uint32 `json:"twtrL"`
	TRDWR uint32 `json:"trdwr"`
	TWRRD uint32 `json:"twrrd"`

	RDRDSCL uint32 `json:"rdrdScl"`
	RDRDSC  uint32 `json:"rdrdSc"`
	RDRDSD  uint32 `json:"rdrdSd"`
	RDRDDD  uint32 `json:"rdrdDd"`
	WRWRSCL uint32 `json:"wrwrScl"`
	WRWRSC  uint32 `json:"wrwrSc"`
	WRWRSD  uint32 `json:"wrwrSd"`
	WRWRDD  uint32 `json:"wrwrDd"`

	TREFI  uint32 `json:"trefi"`
	TWRPRE uint32 `json:"twrpre"`
	TRDPRE uint32 `json:"trdpre"`

	// Tertiary
	TRCPage uint32 `json:"trcPage"`
	TMOD    uint32 `json:"tmod"`
	TMODPDA uint32 `json:"tmodPda"`
	TMRD    uint32 `json:"tmrd"`
	TMRDPDA uint32 `json:"tmrdPda"`
	TSTAG   uint32 `json:"tstag"`
	TSTAGSB uint32 `json:"tstagSb"`
	TCKE    uint32 `json:"tcke"`
	TXP     uint32 `json:"txp"`

	// PHY
	PHYWRD uint32 `json:"phyWrd"`
	PHYWRL uint32 `json:"phyWrl"`
	PHYRDL uint32 `json:"phyRdl"`

	// PHYRDL per memory channel, for multi-DIMM inspection. Only this
	// field is decoded from channels beyond 0.
	PHYRDLChannel      [MaxModules]uint32 `json:"phyRdlChannel"`
	PHYRDLChannelCount int                `json:"phyRdlChannelCount"`

	// Refresh
	TRFC   uint32 `json:"trfc"`
	TRFC2  uint32 `json:"trfc2"`
	TRFCSB uint32 `json:"trfcSb"`

	TREFINS  float64 `json:"trefiNs"`
	TRFCNS   float64 `json:"trfcNs"`
	TRFC2NS  float64 `json:"trfc2Ns"`
	TRFCSBNS float64 `json:"trfcSbNs"`

	GearDownMode  bool        `json:"gearDownMode"`
	PowerDownMode bool        `json:"powerDownMode"`
	CommandRate   CommandRate `json:"commandRate,omitempty"`

	// Memory effective frequency in MT/s decoded from the controller
	// ratio register (DDR5 only; 0 on DDR4).
	Frequency float64 `json:"frequencyMts"`
}
