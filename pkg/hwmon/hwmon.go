// Package hwmon reads the secondary sensor sources under
// /sys/class/hwmon: the zenpower voltage/current/power channels, the
// k10temp die sensors, per-core temperature labels, SPD5118 DIMM
// sensors and Super I/O fan tachometers. Channels are addressed by
// label and matched case-insensitively; a missing chip or channel is
// silently absent.
package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Death4two/TuxTimings/pkg/metrics"
	"github.com/Death4two/TuxTimings/pkg/probing"
	"github.com/Death4two/TuxTimings/pkg/utils"
)

// Channel is one labeled sensor reading in engineering units. Labels
// are lowercased at read time so matching is case-insensitive.
type Channel struct {
	Label string
	Value float64
}

// SecondarySensors is the overlay input for the reconciliation engine:
// every labeled channel one hwmon chip exposes, already converted from
// milli-units.
type SecondarySensors struct {
	Voltages []Channel // V, from in*_input (mV)
	Powers   []Channel // W, from power*_input (µW)
	Currents []Channel // A, from curr*_input (mA)
	Temps    []Channel // °C, from temp*_input (m°C)
}

// Match returns the first channel whose label contains any of the
// given substrings.
func Match(channels []Channel, substrings ...string) (float64, bool) {
	for _, ch := range channels {
		for _, sub := range substrings {
			if strings.Contains(ch.Label, sub) {
				return ch.Value, true
			}
		}
	}
	return 0, false
}

// MatchAll returns the first channel whose label contains every one of
// the given substrings.
func MatchAll(channels []Channel, substrings ...string) (float64, bool) {
	for _, ch := range channels {
		all := true
		for _, sub := range substrings {
			if !strings.Contains(ch.Label, sub) {
				all = false
				break
			}
		}
		if all {
			return ch.Value, true
		}
	}
	return 0, false
}

// Probe enumerates hwmon chips under one sysfs root.
type Probe struct {
	root string
}

func NewProbe() *Probe {
	return &Probe{root: utils.HwmonRoot}
}

// NewProbeAt roots the probe at an alternate directory for tests.
func NewProbeAt(root string) *Probe {
	return &Probe{root: root}
}

// chipDirs lists every hwmon chip directory.
func (p *Probe) chipDirs() []string {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return nil
	}
	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(p.root, e.Name()))
	}
	return dirs
}

// FindByName returns the first chip directory whose name file contains
// the given substring, case-insensitively.
func (p *Probe) FindByName(substr string) (string, bool) {
	for _, dir := range p.chipDirs() {
		name := strings.ToLower(probing.File(filepath.Join(dir, "name")))
		if name != "" && strings.Contains(name, substr) {
			return dir, true
		}
	}
	return "", false
}

// readTempInput reads tempN_input in milli-degrees, rejecting readings
// outside 0–150 °C.
func readTempInput(dir string, index int) (float64, bool) {
	raw := probing.FileInt(filepath.Join(dir, fmt.Sprintf("temp%d_input", index)))
	if raw == 0 {
		return 0, false
	}
	c := float64(raw) / 1000
	if c < 0 || c > 150 {
		return 0, false
	}
	return c, true
}

// readChannels collects every labeled channel of one kind from a chip
// directory. prefix is the sysfs family ("in", "power", "curr",
// "temp"); scale divides the raw integer into engineering units.
func readChannels(dir, prefix string, scale float64) []Channel {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var channels []Channel
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, "_label") {
			continue
		}
		var idx int
		if _, err := fmt.Sscanf(name, prefix+"%d_label", &idx); err != nil {
			continue
		}
		label := strings.ToLower(probing.File(filepath.Join(dir, name)))
		if label == "" {
			continue
		}
		raw := probing.FileInt(filepath.Join(dir, fmt.Sprintf("%s%d_input", prefix, idx)))
		if raw == 0 {
			continue
		}
		channels = append(channels, Channel{Label: label, Value: float64(raw) / scale})
	}
	return channels
}

// Zenpower reads all labeled channels of the zenpower chip, or nil
// when the module is not loaded.
func (p *Probe) Zenpower() *SecondarySensors {
	dir, ok := p.FindByName("zenpower")
	if !ok {
		return nil
	}
	return &SecondarySensors{
		Voltages: readChannels(dir, "in", 1000),
		Powers:   readChannels(dir, "power", 1e6),
		Currents: readChannels(dir, "curr", 1000),
		Temps:    readChannels(dir, "temp", 1000),
	}
}

// DieTemps holds the direct die/CCD sensor channels of the primary
// temperature source.
type DieTemps struct {
	Tctl  *float64
	Tccd1 *float64
	Tccd2 *float64
}

// K10Temp reads the k10temp die channels: temp1 is Tctl, temp3 and
// temp4 are Tccd1/Tccd2 when present.
func (p *Probe) K10Temp() *DieTemps {
	dir, ok := p.FindByName("k10temp")
	if !ok {
		return nil
	}
	d := &DieTemps{}
	if c, ok := readTempInput(dir, 1); ok {
		d.Tctl = metrics.Temp(c)
	}
	if c, ok := readTempInput(dir, 3); ok {
		d.Tccd1 = metrics.Temp(c)
	}
	if c, ok := readTempInput(dir, 4); ok {
		d.Tccd2 = metrics.Temp(c)
	}
	return d
}

// CoreTemps scans every chip for "Core N" temperature labels and
// returns readings keyed by core index.
func (p *Probe) CoreTemps() map[int]float64 {
	temps := make(map[int]float64)
	for _, dir := range p.chipDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if !strings.HasPrefix(name, "temp") || !strings.HasSuffix(name, "_label") {
				continue
			}
			var idx int
			if _, err := fmt.Sscanf(name, "temp%d_label", &idx); err != nil {
				continue
			}
			label := probing.File(filepath.Join(dir, name))
			var core int
			if _, err := fmt.Sscanf(label, "Core %d", &core); err != nil {
				continue
			}
			if core < 0 || core >= metrics.MaxCores {
				continue
			}
			if c, ok := readTempInput(dir, idx); ok {
				temps[core] = c
			}
		}
	}
	return temps
}

// SpdTemps reads SPD5118 DIMM temperature sensors, one per module.
func (p *Probe) SpdTemps() []float64 {
	var temps []float64
	for _, dir := range p.chipDirs() {
		if len(temps) >= metrics.MaxModules {
			break
		}
		name := strings.ToLower(probing.File(filepath.Join(dir, "name")))
		if !strings.Contains(name, "spd5118") {
			continue
		}
		if c, ok := readTempInput(dir, 1); ok {
			temps = append(temps, c)
		}
	}
	return temps
}

// Fans reads the Super I/O (Nuvoton nct6xxx) fan tachometers. Channel
// 7 is conventionally the AIO pump header on these chips.
func (p *Probe) Fans() []metrics.FanReading {
	var fans []metrics.FanReading
	for _, dir := range p.chipDirs() {
		name := strings.ToLower(probing.File(filepath.Join(dir, "name")))
		if !strings.HasPrefix(name, "nct6") && !strings.Contains(name, "nuvoton") {
			continue
		}
		for i := 1; i <= 7 && len(fans) < metrics.MaxFans; i++ {
			rpm := probing.FileInt(filepath.Join(dir, fmt.Sprintf("fan%d_input", i)))
			if rpm <= 0 {
				continue
			}
			label := fmt.Sprintf("Fan%d", i)
			if i == 7 {
				label = "Pump"
			}
			fans = append(fans, metrics.FanReading{Label: label, RPM: int(rpm)})
		}
		if len(fans) > 0 {
			break
		}
	}
	return fans
}
