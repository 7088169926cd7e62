package dram

import (
	"github.com/Death4two/TuxTimings/pkg/metrics"
	"github.com/Death4two/TuxTimings/pkg/utils"
)

// RegisterReader is the SMN register-bus collaborator. A read of an
// absent or unreachable register yields 0.
type RegisterReader interface {
	ReadRegister(addr uint32) uint32
}

// Each UMC instance exposes the same register file at its own
// address-space offset.
const ChannelStride uint32 = 0x100000

// Multiplexed refresh-timing banks reset to recognizable sentinel
// patterns; a bank still holding its reset value carries no data.
const (
	ddr5RFCReset   = 0x00C00138
	ddr4RFCDefault = 0x21060138
)

// ToNanoseconds converts a raw cycle count to nanoseconds at the given
// memory frequency (MT/s). Timing registers are ambiguous between
// single- and double-pumped counting; a result exceeding the raw cycle
// count indicates the double-pumped encoding and is halved once.
func ToNanoseconds(cycles uint32, freqMHz float64) float64 {
	if freqMHz <= 0 {
		return 0
	}
	ns := float64(cycles) * 2000 / freqMHz
	if ns > float64(cycles) {
		ns /= 2
	}
	return ns
}

// decodeCommon extracts the timing fields shared by DDR4 and DDR5 from
// the channel at the given offset.
func decodeCommon(r RegisterReader, offset uint32, d *metrics.DramTimings) {
	reg50204 := r.ReadRegister(offset | 0x50204)
	reg50208 := r.ReadRegister(offset | 0x50208)
	reg5020C := r.ReadRegister(offset | 0x5020C)
	reg50210 := r.ReadRegister(offset | 0x50210)
	reg50214 := r.ReadRegister(offset | 0x50214)
	reg50218 := r.ReadRegister(offset | 0x50218)
	reg5021C := r.ReadRegister(offset | 0x5021C)
	reg50220 := r.ReadRegister(offset | 0x50220)
	reg50224 := r.ReadRegister(offset | 0x50224)
	reg50228 := r.ReadRegister(offset | 0x50228)
	reg50230 := r.ReadRegister(offset | 0x50230)
	reg50234 := r.ReadRegister(offset | 0x50234)
	reg50250 := r.ReadRegister(offset | 0x50250)
	reg50254 := r.ReadRegister(offset | 0x50254)
	reg50258 := r.ReadRegister(offset | 0x50258)
	reg502A4 := r.ReadRegister(offset | 0x502A4)

	d.TCL = Slice(reg50204, 5, 0)
	d.TRCDRD = Slice(reg50204, 21, 16)
	d.TRCDWR = Slice(reg50204, 29, 24)
	if d.TRCDWR == 0 {
		d.TRCDWR = d.TRCDRD
	}
	d.TRAS = Slice(reg50204, 14, 8)
	d.TRP = Slice(reg50208, 21, 16)
	d.TRC = Slice(reg50208, 7, 0)

	d.TRRDS = Slice(reg5020C, 4, 0)
	d.TRRDL = Slice(reg5020C, 12, 8)
	d.TRTP = Slice(reg5020C, 28, 24)
	d.TFAW = Slice(reg50210, 7, 0)

	d.TWTRS = Slice(reg50214, 12, 8)
	d.TWTRL = Slice(reg50214, 22, 16)
	d.TCWL = Slice(reg50214, 5, 0)
	d.TWR = Slice(reg50218, 7, 0)
	if d.TWR == 0 {
		d.TWR = d.TWTRS
	}

	d.TRCPage = Slice(reg5021C, 31, 20)

	d.RDRDSCL = Slice(reg50220, 29, 24)
	d.RDRDSC = Slice(reg50220, 19, 16)
	d.RDRDSD = Slice(reg50220, 11, 8)
	d.RDRDDD = Slice(reg50220, 3, 0)

	d.WRWRSCL = Slice(reg50224, 29, 24)
	d.WRWRSC = Slice(reg50224, 19, 16)
	d.WRWRSD = Slice(reg50224, 11, 8)
	d.WRWRDD = Slice(reg50224, 3, 0)

	d.TRDWR = Slice(reg50228, 13, 8)
	d.TWRRD = Slice(reg50228, 3, 0)
	d.TREFI = Slice(reg50230, 15, 0)

	d.TMODPDA = Slice(reg50234, 29, 24)
	d.TMRDPDA = Slice(reg50234, 21, 16)
	d.TMOD = Slice(reg50234, 13, 8)
	d.TMRD = Slice(reg50234, 5, 0)

	d.TSTAG = Slice(reg50250, 26, 16)
	d.TSTAGSB = Slice(reg50250, 8, 0)

	d.TCKE = Slice(reg50254, 28, 24)
	d.TXP = Slice(reg50254, 5, 0)

	d.PHYWRD = Slice(reg50258, 26, 24)
	d.PHYRDL = Slice(reg50258, 23, 16)
	d.PHYWRL = Slice(reg50258, 15, 8)

	d.TWRPRE = Slice(reg502A4, 10, 8)
	d.TRDPRE = Slice(reg502A4, 2, 0)
}

// decodePhyRdlChannels records the PHY read latency of each memory
// channel, the one field worth exposing per-channel for multi-DIMM
// inspection. Everything else comes from channel 0.
func decodePhyRdlChannels(r RegisterReader, d *metrics.DramTimings) {
	d.PHYRDLChannel[0] = d.PHYRDL
	d.PHYRDLChannelCount = 1
	for ch := uint32(1); ch < 2; ch++ {
		reg := r.ReadRegister(ch*ChannelStride | 0x50258)
		rdl := Slice(reg, 23, 16)
		if rdl == 0 {
			break
		}
		d.PHYRDLChannel[ch] = rdl
		d.PHYRDLChannelCount = int(ch) + 1
	}
}

// DecodeDDR5 reads the DDR5 timing set from UMC channel 0.
func DecodeDDR5(r RegisterReader) *metrics.DramTimings {
	d := &metrics.DramTimings{}
	const offset uint32 = 0

	// The ratio register encodes the memory ratio in hundredths; the
	// effective rate is ratio * 200 MT/s.
	ratioReg := r.ReadRegister(offset | 0x50200)
	ratio := float64(Slice(ratioReg, 15, 0)) / 100
	freq := ratio * 200
	d.Frequency = freq

	d.GearDownMode = Slice(ratioReg, 18, 18) == 1
	if Slice(ratioReg, 17, 17) == 1 {
		d.CommandRate = metrics.CommandRate2T
	} else {
		d.CommandRate = metrics.CommandRate1T
	}
	refreshReg := r.ReadRegister(offset | 0x5012C)
	d.PowerDownMode = Slice(refreshReg, 28, 28) == 1

	decodeCommon(r, offset, d)

	// RFC/RFC2 live in one of four multiplexed banks; the first bank
	// that moved off its reset pattern holds the programmed values.
	rfcRegs := []uint32{
		r.ReadRegister(offset | 0x50260),
		r.ReadRegister(offset | 0x50264),
		r.ReadRegister(offset | 0x50268),
		r.ReadRegister(offset | 0x5026C),
	}
	if reg, ok := utils.FirstValid(rfcRegs, func(v uint32) bool {
		return v != ddr5RFCReset
	}); ok && reg != 0 {
		d.TRFC = Slice(reg, 15, 0)
		d.TRFC2 = Slice(reg, 31, 16)
	}

	rfcsbRegs := []uint32{
		Slice(r.ReadRegister(offset|0x502C0), 10, 0),
		Slice(r.ReadRegister(offset|0x502C4), 10, 0),
		Slice(r.ReadRegister(offset|0x502C8), 10, 0),
		Slice(r.ReadRegister(offset|0x502CC), 10, 0),
	}
	if v, ok := utils.FirstValid(rfcsbRegs, func(v uint32) bool {
		return v != 0
	}); ok {
		d.TRFCSB = v
	}

	d.TREFINS = ToNanoseconds(d.TREFI, freq)
	d.TRFCNS = ToNanoseconds(d.TRFC, freq)
	d.TRFC2NS = ToNanoseconds(d.TRFC2, freq)
	d.TRFCSBNS = ToNanoseconds(d.TRFCSB, freq)

	decodePhyRdlChannels(r, d)

	return d
}

// DecodeDDR4 reads the DDR4 timing set from UMC channel 0. DDR4
// platforms expose no ratio register; frequency comes from the PM
// table's memory clock instead, so no nanosecond conversion happens
// here.
func DecodeDDR4(r RegisterReader) *metrics.DramTimings {
	d := &metrics.DramTimings{}
	const offset uint32 = 0

	decodeCommon(r, offset, d)

	// Only two RFC banks on DDR4, selected by simple inequality.
	trfc0 := r.ReadRegister(offset | 0x50260)
	trfc1 := r.ReadRegister(offset | 0x50264)
	reg := trfc0
	if trfc0 != trfc1 && trfc0 == ddr4RFCDefault {
		reg = trfc1
	}
	if reg != 0 {
		d.TRFC = Slice(reg, 10, 0)
		d.TRFC2 = Slice(reg, 21, 11)
	}

	decodePhyRdlChannels(r, d)

	return d
}
