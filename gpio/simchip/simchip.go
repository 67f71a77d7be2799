// Package simchip emulates a GPIO controller in memory. It backs host
// builds and tests where no hardware is present.
package simchip

import (
	"errors"
	"sync"

	"devobj-go/gpio"
)

var ErrOffset = errors.New("simchip: offset out of range")

// Chip holds line levels and configuration flags for n lines.
type Chip struct {
	mu   sync.RWMutex
	vals []int
	cfg  []uint16
}

// New returns a chip with n lines, all low and unconfigured.
func New(n uint16) *Chip {
	return &Chip{vals: make([]int, n), cfg: make([]uint16, n)}
}

// Describe wraps c as a gpio.Chip registered under label.
func (c *Chip) Describe(label string) gpio.Chip {
	return gpio.Chip{Label: label, NumGPIOs: uint16(len(c.vals)), Driver: c}
}

func (c *Chip) SetValue(offset uint16, value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int(offset) >= len(c.vals) {
		return ErrOffset
	}
	if value != 0 {
		value = 1
	}
	c.vals[offset] = value
	return nil
}

func (c *Chip) GetValue(offset uint16) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if int(offset) >= len(c.vals) {
		return 0, ErrOffset
	}
	return c.vals[offset], nil
}

// SetConfig applies the masked flags of cfg to the line.
func (c *Chip) SetConfig(offset uint16, cfg gpio.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int(offset) >= len(c.vals) {
		return ErrOffset
	}
	c.cfg[offset] = c.cfg[offset]&^cfg.Mask | cfg.Flags&cfg.Mask
	return nil
}

// Config exposes the stored flags of a line for inspection.
func (c *Chip) Config(offset uint16) (uint16, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if int(offset) >= len(c.cfg) {
		return 0, false
	}
	return c.cfg[offset], true
}

var _ gpio.Driver = (*Chip)(nil)
