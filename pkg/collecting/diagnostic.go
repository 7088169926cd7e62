package collecting

import (
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Death4two/TuxTimings/pkg/probing"
)

// captureDiagnostic dumps the raw PM table once when the decode cannot
// proceed: an absent table or one that stayed all zero after a retry.
// Later failures in the same run only count on the log.
func (m *Manager) captureDiagnostic(table []float32) {
	m.diagOnce.Do(func() {
		reason := "all-zero"
		if len(table) == 0 {
			reason = "missing"
		}

		raw := probing.FileBytes(filepath.Join(m.drv.Base(), "pm_table"))
		if len(raw) == 0 {
			log.Printf("pm table %s, nothing to capture", reason)
			return
		}

		path := filepath.Join(os.TempDir(), "tuxtimings-pmtable-"+uuid.New().String()+".bin")
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			log.Printf("pm table %s, capture failed: %v", reason, err)
			return
		}
		log.Printf("pm table %s, raw dump saved to %s", reason, path)
	})
}
