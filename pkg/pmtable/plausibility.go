package pmtable

// Plausibility ranges per physical quantity. A raw PM table float is
// only accepted as a genuine reading when it falls inside the range of
// the quantity it is supposed to be; everything else is treated as
// absent. This is the primary error-handling mechanism for ambiguous
// table layouts. All bounds are inclusive.
const (
	MinVoltage = 0.25
	MaxVoltage = 2.2

	MinPower = 0.5
	MaxPower = 400.0

	MinCurrent = 0.5
	MaxCurrent = 200.0

	MinTemperature = 1.0
	MaxTemperature = 150.0

	MinClockMHz = 500.0
	MaxClockMHz = 6500.0
)

func PlausibleVoltage(v float64) bool {
	return v >= MinVoltage && v <= MaxVoltage
}

func PlausiblePower(v float64) bool {
	return v >= MinPower && v <= MaxPower
}

func PlausibleCurrent(v float64) bool {
	return v >= MinCurrent && v <= MaxCurrent
}

func PlausibleTemperature(v float64) bool {
	return v >= MinTemperature && v <= MaxTemperature
}

// NormalizeClock validates a clock reading in MHz. Some table layouts
// report core clocks in GHz; values in 0.5–6.5 are scaled to MHz before
// the range check is reapplied.
func NormalizeClock(v float64) (float64, bool) {
	if v >= 0.5 && v <= 6.5 {
		v *= 1000
	}
	if v >= MinClockMHz && v <= MaxClockMHz {
		return v, true
	}
	return 0, false
}

func PlausibleClock(v float64) bool {
	_, ok := NormalizeClock(v)
	return ok
}
