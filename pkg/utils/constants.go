package utils

const (
	// SMUDriverPath is where the ryzen_smu kernel module exposes its
	// sysfs interface.
	SMUDriverPath = "/sys/kernel/ryzen_smu_drv"

	HwmonRoot  = "/sys/class/hwmon"
	CPUSysRoot = "/sys/devices/system/cpu"
	DMIRoot    = "/sys/class/dmi/id"
)

// FirstValid returns the first candidate accepted by the predicate.
// Several register banks and PM table layouts expose N possible homes
// for one value; the convention throughout is: take the first one that
// looks genuine, report absence otherwise.
func FirstValid[T any](candidates []T, valid func(T) bool) (T, bool) {
	for _, c := range candidates {
		if valid(c) {
			return c, true
		}
	}
	var zero T
	return zero, false
}
