package printer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

type spoolPrinter struct {
	dir string
	seq atomic.Uint64
}

// NewSpoolPrinter creates a printer that writes each job to a file in
// the spool directory. Used as the fallback strategy so receipts are
// never lost when no hardware printer is reachable.
func NewSpoolPrinter(dir string) Printer {
	return &spoolPrinter{dir: dir}
}

func (p *spoolPrinter) Print(data []byte) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("printer: failed to create spool dir %s: %w", p.dir, err)
	}

	// Timestamp plus sequence keeps names unique within a millisecond
	name := fmt.Sprintf("receipt-%s-%04d.escpos",
		time.Now().Format("20060102-150405.000"), p.seq.Add(1))

	path := filepath.Join(p.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("printer: failed to write spool file %s: %w", path, err)
	}
	return nil
}

func (p *spoolPrinter) Close() error {
	return nil
}

func (p *spoolPrinter) IsConnected() bool {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return false
	}
	return true
}
