// Package metrics defines the engineering-unit data model shared by the
// PM table decoder, the DRAM timing decoder, and the reconciliation
// engine.
package metrics

const (
	MaxCores   = 16
	MaxModules = 4
	MaxFans    = 8
)

// Metrics is one reconciled telemetry snapshot. Every field is either a
// plausibility-filtered genuine reading or its absent sentinel: zero for
// scalars, nil for the optional temperature sensors. Per-core arrays
// carry an explicit valid count alongside their fixed capacity.
type Metrics struct {
	// Power
	PackagePower   float64 `json:"packagePowerW"`
	PPT            float64 `json:"pptW"`
	PackageCurrent float64 `json:"packageCurrentA"`

	// Voltages (V)
	VCore   float64 `json:"vcore"`
	VSoc    float64 `json:"vsoc"`
	VDDP    float64 `json:"vddp"`
	VDDGCcd float64 `json:"vddgCcd"`
	VDDGIod float64 `json:"vddgIod"`
	VDDMisc float64 `json:"vddMisc"`
	MemVDD  float64 `json:"memVdd"`
	MemVDDQ float64 `json:"memVddq"`
	MemVPP  float64 `json:"memVpp"`
	VID     float64 `json:"vid"`

	// Clocks (MHz)
	CoreClock float64 `json:"coreClockMhz"`
	BCLK      float64 `json:"bclkMhz"`
	FCLK      float64 `json:"fclkMhz"`
	UCLK      float64 `json:"uclkMhz"`
	MCLK      float64 `json:"mclkMhz"`

	// Temperatures (°C). The named die sensors are optional: nil means
	// the platform never reported them, which the presentation layer
	// renders as a placeholder.
	CPUTemp    float64  `json:"cpuTempC"`
	Tdie       *float64 `json:"tdieC,omitempty"`
	Tctl       *float64 `json:"tctlC,omitempty"`
	Tccd1      *float64 `json:"tccd1C,omitempty"`
	Tccd2      *float64 `json:"tccd2C,omitempty"`
	IodHotspot *float64 `json:"iodHotspotC,omitempty"`

	// Per-core readings.
	CoreTemps        [MaxCores]float64 `json:"coreTempsC"`
	CoreTempCount    int               `json:"coreTempCount"`
	CoreClocks       [MaxCores]float64 `json:"coreClocksGhz"`
	CoreClockCount   int               `json:"coreClockCount"`
	CoreVoltages     [MaxCores]float64 `json:"coreVoltages"`
	CoreVoltageCount int               `json:"coreVoltageCount"`
	CoreUsage        [MaxCores]float64 `json:"coreUsagePct"`
	CoreUsageCount   int               `json:"coreUsageCount"`
	CoreFreq         [MaxCores]float64 `json:"coreFreqMhz"`
	CoreFreqCount    int               `json:"coreFreqCount"`

	// DIMM sensor temperatures (SPD5118).
	SpdTemps     [MaxModules]float64 `json:"spdTempsC"`
	SpdTempCount int                 `json:"spdTempCount"`
}

// Temp returns a pointer suitable for the optional temperature fields.
func Temp(c float64) *float64 { return &c }
