// Package dram decodes DDR4/DDR5 memory timings from the UMC register
// space reached over the SMN register bus.
package dram

// Slice returns the unsigned integer held in bits hi..lo (inclusive)
// of value. Invalid ranges (hi < lo, or bounds outside 0..31) read as
// 0 rather than faulting; register decode treats that the same as a
// missing register.
func Slice(value uint32, hi, lo int) uint32 {
	if lo < 0 || hi > 31 || hi < lo {
		return 0
	}
	width := hi - lo + 1
	if width == 32 {
		return value
	}
	return (value >> uint(lo)) & ((1 << uint(width)) - 1)
}
