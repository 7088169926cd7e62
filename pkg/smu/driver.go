// Package smu talks to the ryzen_smu kernel driver's sysfs interface:
// platform identification, the raw PM table blob, and the SMN register
// bus. Every read tolerates the driver being absent; callers see zero
// values, never errors, for missing hardware.
package smu

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/Death4two/TuxTimings/pkg/probing"
	"github.com/Death4two/TuxTimings/pkg/utils"
)

// Driver is a handle on the ryzen_smu sysfs directory.
type Driver struct {
	base string

	// The SMN endpoint is a two-step write-address/read-value protocol
	// over one shared file with no atomicity between the steps, so a
	// transaction owns the endpoint exclusively until it completes.
	smnMu sync.Mutex
}

// New returns a driver handle on the default sysfs path.
func New() *Driver {
	return &Driver{base: utils.SMUDriverPath}
}

// NewAt returns a driver handle rooted at an alternate directory,
// for tests and for the -smu-path override.
func NewAt(base string) *Driver {
	if base == "" {
		return New()
	}
	return &Driver{base: base}
}

// Base returns the driver's sysfs directory.
func (d *Driver) Base() string {
	return d.base
}

// Available reports whether the ryzen_smu driver is loaded.
func (d *Driver) Available() bool {
	return probing.Exists(filepath.Join(d.base, "version"))
}

// Version returns the SMU firmware version string.
func (d *Driver) Version() string {
	return probing.File(filepath.Join(d.base, "version"))
}

// CodenameIndex returns the driver's CPU codename index, or -1 when
// unavailable.
func (d *Driver) CodenameIndex() int {
	s := probing.File(filepath.Join(d.base, "codename"))
	if s == "" {
		return -1
	}
	return int(probing.ParseInt64(s))
}

// PMTableVersion returns the PM table version identifier, a 4-byte
// little-endian value, or 0 when unavailable.
func (d *Driver) PMTableVersion() uint32 {
	raw := probing.FileBytes(filepath.Join(d.base, "pm_table_version"))
	if len(raw) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(raw)
}

// PMTable reads the current PM table blob as a float array. The blob
// length is driver-dependent; anything under 16 bytes counts as no
// data. Trailing bytes that do not fill a whole float are dropped.
func (d *Driver) PMTable() []float32 {
	raw := probing.FileBytes(filepath.Join(d.base, "pm_table"))
	if len(raw) < 16 {
		return nil
	}
	count := len(raw) / 4
	table := make([]float32, count)
	for i := 0; i < count; i++ {
		table[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return table
}

// ReadRegister performs one SMN register transaction: write the 4-byte
// little-endian address, then read back the register's 4-byte
// little-endian value. A missing endpoint or short transfer reads as 0.
func (d *Driver) ReadRegister(addr uint32) uint32 {
	d.smnMu.Lock()
	defer d.smnMu.Unlock()

	f, err := os.OpenFile(filepath.Join(d.base, "smn"), os.O_RDWR, 0)
	if err != nil {
		return 0
	}
	defer f.Close()

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], addr)
	if _, err := f.Write(buf[:]); err != nil {
		return 0
	}
	if _, err := f.Seek(0, 0); err != nil {
		return 0
	}
	if _, err := f.Read(buf[:]); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(buf[:])
}
