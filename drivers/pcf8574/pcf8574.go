// Package pcf8574 drives the PCF8574 8-bit I2C GPIO expander as a GPIO
// controller.
//
// The expander has no direction register. Each line is quasi-bidirectional:
// writing 1 releases the line to a weak pull-up (and makes it readable as an
// input), writing 0 drives it low. The driver keeps a shadow of the output
// latch so single-line writes do not disturb the other seven lines.
//
// I2C.Tx is used for single-byte writes and single-byte reads only.
package pcf8574

import (
	"errors"
	"sync"

	"devobj-go/gpio"

	"tinygo.org/x/drivers"
)

// Address is the base I2C address (A2..A0 tied low). PCF8574A parts start at 0x38.
const Address = 0x20

// NumGPIOs is the number of lines on one expander.
const NumGPIOs = 8

var ErrOffset = errors.New("pcf8574: offset out of range")

// Device wraps an I2C connection to one expander.
type Device struct {
	bus     drivers.I2C
	Address uint16

	mu    sync.Mutex
	latch byte
	buf   [1]byte
}

// New creates a Device. The bus must already be configured. All lines start
// released (latch 0xFF), matching the power-on state of the part.
func New(bus drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = Address
	}
	return &Device{bus: bus, Address: addr, latch: 0xFF}
}

// Describe wraps d as a gpio.Chip registered under label.
func (d *Device) Describe(label string) gpio.Chip {
	return gpio.Chip{Label: label, NumGPIOs: NumGPIOs, Driver: d}
}

// Configure pushes the shadow latch to the part.
func (d *Device) Configure() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.write(d.latch)
}

// write sends v as the new latch. Callers hold d.mu.
func (d *Device) write(v byte) error {
	d.buf[0] = v
	if err := d.bus.Tx(d.Address, d.buf[:], nil); err != nil {
		return err
	}
	d.latch = v
	return nil
}

// Read returns the current level of all eight lines.
func (d *Device) Read() (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.bus.Tx(d.Address, nil, d.buf[:]); err != nil {
		return 0, err
	}
	return d.buf[0], nil
}

// Latch returns the shadow of the output latch.
func (d *Device) Latch() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latch
}

func (d *Device) SetValue(offset uint16, value int) error {
	if offset >= NumGPIOs {
		return ErrOffset
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.latch &^ (1 << offset)
	if value != 0 {
		v |= 1 << offset
	}
	return d.write(v)
}

func (d *Device) GetValue(offset uint16) (int, error) {
	if offset >= NumGPIOs {
		return 0, ErrOffset
	}
	v, err := d.Read()
	if err != nil {
		return 0, err
	}
	return int(v>>offset) & 1, nil
}

// SetConfig supports FlagDir only. An input is a released line; an output
// takes its initial level from FlagVal. Pull selection is fixed in silicon.
func (d *Device) SetConfig(offset uint16, cfg gpio.Config) error {
	if offset >= NumGPIOs {
		return ErrOffset
	}
	if cfg.Mask&gpio.FlagDir == 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.latch | 1<<offset
	if cfg.Flags&gpio.FlagDir != 0 && cfg.Flags&gpio.FlagVal == 0 {
		v &^= 1 << offset
	}
	return d.write(v)
}

var _ gpio.Driver = (*Device)(nil)
