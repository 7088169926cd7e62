package dram

import (
	"testing"

	"github.com/Death4two/TuxTimings/pkg/metrics"
)

// fakeBus serves registers from a map; absent addresses read as 0, the
// same contract the SMN driver provides.
type fakeBus map[uint32]uint32

func (b fakeBus) ReadRegister(addr uint32) uint32 { return b[addr] }

func TestSlice(t *testing.T) {
	cases := []struct {
		value  uint32
		hi, lo int
		want   uint32
	}{
		{0xABCD1234, 15, 0, 0x1234},
		{0xABCD1234, 31, 16, 0xABCD},
		{0xFFFFFFFF, 31, 0, 0xFFFFFFFF},
		{0x00000040, 6, 6, 1},
		{0x00000040, 5, 5, 0},
		{0xDEADBEEF, 3, 5, 0},  // hi < lo
		{0xDEADBEEF, 35, 0, 0}, // hi out of range
		{0xDEADBEEF, 7, -1, 0}, // lo out of range
	}
	for _, c := range cases {
		if got := Slice(c.value, c.hi, c.lo); got != c.want {
			t.Errorf("Slice(%#x, %d, %d) = %#x; want %#x", c.value, c.hi, c.lo, got, c.want)
		}
	}
}

func TestToNanoseconds(t *testing.T) {
	cases := []struct {
		cycles uint32
		freq   float64
		want   float64
	}{
		{1024, 3200, 640},
		{30000, 3200, 18750},
		{100, 500, 200}, // double-pumped encoding, halved once
		{708, 3200, 442.5},
		{500, 0, 0},
		{500, -1, 0},
	}
	for _, c := range cases {
		if got := ToNanoseconds(c.cycles, c.freq); got != c.want {
			t.Errorf("ToNanoseconds(%d, %v) = %v; want %v", c.cycles, c.freq, got, c.want)
		}
	}
}

func TestDecodeDDR5(t *testing.T) {
	bus := fakeBus{
		// ratio 16.00 -> 3200 MT/s, 2T bit set, gear-down clear
		0x50200: 0x640 | 1<<17,
		0x5012C: 1 << 28,
		// TCL 30, TRAS 62, TRCDRD 38, TRCDWR absent
		0x50204: 30 | 62<<8 | 38<<16,
		// TRC 100, TRP 38
		0x50208: 100 | 38<<16,
		0x50230: 30000,
		// PHYWRL 10, PHYRDL 26, PHYWRD 2
		0x50258: 10<<8 | 26<<16 | 2<<24,
		// first two refresh banks still at reset, third programmed
		0x50260: ddr5RFCReset,
		0x50264: ddr5RFCReset,
		0x50268: 708 | 390<<16,
		0x502C4: 360,
	}

	d := DecodeDDR5(bus)

	if d.Frequency != 3200 {
		t.Errorf("Frequency = %v; want 3200", d.Frequency)
	}
	if d.CommandRate != metrics.CommandRate2T {
		t.Errorf("CommandRate = %q; want 2T", d.CommandRate)
	}
	if d.GearDownMode {
		t.Error("GearDownMode = true; want false")
	}
	if !d.PowerDownMode {
		t.Error("PowerDownMode = false; want true")
	}

	if d.TCL != 30 || d.TRAS != 62 || d.TRP != 38 || d.TRC != 100 {
		t.Errorf("primaries = CL%d RAS%d RP%d RC%d; want CL30 RAS62 RP38 RC100",
			d.TCL, d.TRAS, d.TRP, d.TRC)
	}
	if d.TRCDWR != d.TRCDRD {
		t.Errorf("TRCDWR = %d; want read value %d when unset", d.TRCDWR, d.TRCDRD)
	}

	if d.TRFC != 708 || d.TRFC2 != 390 {
		t.Errorf("TRFC/TRFC2 = %d/%d; want 708/390 from first non-reset bank", d.TRFC, d.TRFC2)
	}
	if d.TRFCSB != 360 {
		t.Errorf("TRFCSB = %d; want 360", d.TRFCSB)
	}
	if d.TRFCNS != 442.5 {
		t.Errorf("TRFCNS = %v; want 442.5", d.TRFCNS)
	}
	if d.TREFINS != 18750 {
		t.Errorf("TREFINS = %v; want 18750", d.TREFINS)
	}
	if d.TRFCSBNS != 225 {
		t.Errorf("TRFCSBNS = %v; want 225", d.TRFCSBNS)
	}

	if d.PHYRDL != 26 || d.PHYWRL != 10 || d.PHYWRD != 2 {
		t.Errorf("PHY = wrd%d wrl%d rdl%d; want wrd2 wrl10 rdl26", d.PHYWRD, d.PHYWRL, d.PHYRDL)
	}
	if d.PHYRDLChannelCount != 1 || d.PHYRDLChannel[0] != 26 {
		t.Errorf("PHYRDLChannel = %v (count %d); want [26] (count 1)",
			d.PHYRDLChannel[:d.PHYRDLChannelCount], d.PHYRDLChannelCount)
	}
}

func TestDecodeDDR5SecondChannel(t *testing.T) {
	bus := fakeBus{
		0x50258:                 26 << 16,
		ChannelStride | 0x50258: 28 << 16,
	}

	d := DecodeDDR5(bus)
	if d.PHYRDLChannelCount != 2 {
		t.Fatalf("PHYRDLChannelCount = %d; want 2", d.PHYRDLChannelCount)
	}
	if d.PHYRDLChannel[1] != 28 {
		t.Errorf("PHYRDLChannel[1] = %d; want 28", d.PHYRDLChannel[1])
	}
}

func TestDecodeDDR4(t *testing.T) {
	bus := fakeBus{
		// TCL 16, TRAS 36, TRCDRD 18, TRCDWR 20
		0x50204: 16 | 36<<8 | 18<<16 | 20<<24,
		// bank 0 still at its default, bank 1 programmed
		0x50260: ddr4RFCDefault,
		0x50264: 560 | 416<<11,
	}

	d := DecodeDDR4(bus)

	if d.TCL != 16 || d.TRCDRD != 18 || d.TRCDWR != 20 || d.TRAS != 36 {
		t.Errorf("primaries = CL%d RCDRD%d RCDWR%d RAS%d; want CL16 RCDRD18 RCDWR20 RAS36",
			d.TCL, d.TRCDRD, d.TRCDWR, d.TRAS)
	}
	if d.TRFC != 560 || d.TRFC2 != 416 {
		t.Errorf("TRFC/TRFC2 = %d/%d; want 560/416 from programmed bank", d.TRFC, d.TRFC2)
	}

	// No ratio register on this generation; frequency comes from the PM
	// table and the cycle counts stay raw.
	if d.Frequency != 0 {
		t.Errorf("Frequency = %v; want 0", d.Frequency)
	}
	if d.TRFCNS != 0 {
		t.Errorf("TRFCNS = %v; want 0", d.TRFCNS)
	}
	if d.CommandRate != "" {
		t.Errorf("CommandRate = %q; want empty", d.CommandRate)
	}
}

func TestDecodeDDR4BothBanksEqual(t *testing.T) {
	bus := fakeBus{
		0x50260: 312 | 256<<11,
		0x50264: 312 | 256<<11,
	}

	d := DecodeDDR4(bus)
	if d.TRFC != 312 || d.TRFC2 != 256 {
		t.Errorf("TRFC/TRFC2 = %d/%d; want 312/256 from bank 0", d.TRFC, d.TRFC2)
	}
}
