package printer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
)

// maxAttemptHistory bounds the in-memory attempt log.
const maxAttemptHistory = 100

// Attempt records a single strategy tried during a chained print.
type Attempt struct {
	Strategy string    `json:"strategy"`
	Success  bool      `json:"success"`
	Error    string    `json:"error,omitempty"`
	At       time.Time `json:"at"`
}

// NamedPrinter pairs a printer with the strategy name it was configured
// under, so attempt history reads back meaningfully.
type NamedPrinter struct {
	Name    string
	Printer Printer
}

// ChainPrinter tries an ordered list of printers until one succeeds.
// Failed strategies are skipped, not fatal; the print only fails when
// every strategy in the chain has failed. Attempts are recorded in a
// bounded in-memory history for the diagnostics endpoint.
type ChainPrinter struct {
	mu       sync.Mutex
	printers []NamedPrinter
	history  []Attempt
}

// NewChainPrinter creates a chain over the given printers, tried in order.
func NewChainPrinter(printers ...NamedPrinter) *ChainPrinter {
	return &ChainPrinter{printers: printers}
}

// Print sends the data through the chain, stopping at the first printer
// that accepts it.
func (c *ChainPrinter) Print(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.printers) == 0 {
		return fmt.Errorf("printer: no strategies configured")
	}

	var errs []string
	for _, np := range c.printers {
		err := np.Printer.Print(data)
		c.record(Attempt{
			Strategy: np.Name,
			Success:  err == nil,
			At:       time.Now(),
			Error:    errString(err),
		})
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Sprintf("%s: %v", np.Name, err))
	}

	return fmt.Errorf("printer: all strategies failed: %s", strings.Join(errs, "; "))
}

// Close closes every printer in the chain, combining any errors.
func (c *ChainPrinter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for _, np := range c.printers {
		err = multierr.Append(err, np.Printer.Close())
	}
	return err
}

// IsConnected reports whether at least one strategy is reachable.
func (c *ChainPrinter) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, np := range c.printers {
		if np.Printer.IsConnected() {
			return true
		}
	}
	return false
}

// Strategies returns the configured strategy names in chain order.
func (c *ChainPrinter) Strategies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.printers))
	for _, np := range c.printers {
		names = append(names, np.Name)
	}
	return names
}

// History returns a copy of the recorded attempts, newest last.
func (c *ChainPrinter) History() []Attempt {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Attempt, len(c.history))
	copy(out, c.history)
	return out
}

func (c *ChainPrinter) record(a Attempt) {
	c.history = append(c.history, a)
	if len(c.history) > maxAttemptHistory {
		c.history = c.history[len(c.history)-maxAttemptHistory:]
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// NewChainFromConfig builds a chain from strategy names. Each name is
// one of usb, network, spool, null. Comma-joined values are accepted so
// a single env var can carry the whole chain.
func NewChainFromConfig(strategies []string, devicePath, address, spoolDir string) (*ChainPrinter, error) {
	var printers []NamedPrinter

	for _, raw := range strategies {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			switch name {
			case "usb":
				if devicePath == "" {
					return nil, fmt.Errorf("printer: USB device path is required for usb strategy")
				}
				printers = append(printers, NamedPrinter{Name: "usb", Printer: NewUSBPrinter(devicePath)})
			case "network":
				if address == "" {
					return nil, fmt.Errorf("printer: address is required for network strategy")
				}
				printers = append(printers, NamedPrinter{Name: "network", Printer: NewNetworkPrinter(address)})
			case "spool":
				if spoolDir == "" {
					return nil, fmt.Errorf("printer: spool directory is required for spool strategy")
				}
				printers = append(printers, NamedPrinter{Name: "spool", Printer: NewSpoolPrinter(spoolDir)})
			case "null", "none":
				printers = append(printers, NamedPrinter{Name: "null", Printer: NewNullPrinter()})
			default:
				return nil, fmt.Errorf("printer: unknown strategy %q (use usb, network, spool, or null)", name)
			}
		}
	}

	if len(printers) == 0 {
		printers = append(printers, NamedPrinter{Name: "null", Printer: NewNullPrinter()})
	}

	return NewChainPrinter(printers...), nil
}
