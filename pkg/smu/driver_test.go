package smu

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeSysfs(t *testing.T, base, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(base, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAvailable(t *testing.T) {
	base := t.TempDir()
	d := NewAt(base)

	if d.Available() {
		t.Error("Available() = true for an empty directory")
	}

	writeSysfs(t, base, "version", []byte("84.79.229\n"))
	if !d.Available() {
		t.Error("Available() = false with a version file present")
	}
	if got := d.Version(); got != "84.79.229" {
		t.Errorf("Version() = %q; want 84.79.229", got)
	}
}

func TestCodenameIndex(t *testing.T) {
	base := t.TempDir()
	d := NewAt(base)

	if got := d.CodenameIndex(); got != -1 {
		t.Errorf("CodenameIndex() = %d; want -1 when absent", got)
	}

	writeSysfs(t, base, "codename", []byte("23\n"))
	if got := d.CodenameIndex(); got != 23 {
		t.Errorf("CodenameIndex() = %d; want 23", got)
	}
}

func TestPMTableVersion(t *testing.T) {
	base := t.TempDir()
	d := NewAt(base)

	if got := d.PMTableVersion(); got != 0 {
		t.Errorf("PMTableVersion() = %#x; want 0 when absent", got)
	}

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], 0x380805)
	writeSysfs(t, base, "pm_table_version", buf[:])
	if got := d.PMTableVersion(); got != 0x380805 {
		t.Errorf("PMTableVersion() = %#x; want 0x380805", got)
	}
}

func TestPMTable(t *testing.T) {
	base := t.TempDir()
	d := NewAt(base)

	if got := d.PMTable(); got != nil {
		t.Errorf("PMTable() = %v; want nil when absent", got)
	}

	want := []float32{1.25, 88.5, 4200, 62.5, 0, 3200}
	raw := make([]byte, len(want)*4+3) // trailing partial float dropped
	for i, f := range want {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(f))
	}
	writeSysfs(t, base, "pm_table", raw)

	got := d.PMTable()
	if len(got) != len(want) {
		t.Fatalf("len(PMTable()) = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("table[%d] = %v; want %v", i, got[i], want[i])
		}
	}
}

func TestPMTableTooShort(t *testing.T) {
	base := t.TempDir()
	d := NewAt(base)
	writeSysfs(t, base, "pm_table", make([]byte, 12))

	if got := d.PMTable(); got != nil {
		t.Errorf("PMTable() = %v; want nil under the 16-byte floor", got)
	}
}

func TestReadRegisterAbsent(t *testing.T) {
	d := NewAt(t.TempDir())
	if got := d.ReadRegister(0x50204); got != 0 {
		t.Errorf("ReadRegister = %#x; want 0 without the smn endpoint", got)
	}
}

func TestNewAtEmptyFallsBack(t *testing.T) {
	d := NewAt("")
	if d.Base() == "" {
		t.Error("NewAt(\"\") left the base path empty")
	}
}
