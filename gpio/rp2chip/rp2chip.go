//go:build rp2040 || rp2350

// Package rp2chip exposes the RP2 bank of GPIOs as a gpio controller.
// Offsets map directly to machine.Pin(n), matching Pico GP numbering.
package rp2chip

import (
	"errors"
	"machine"

	"devobj-go/gpio"
)

// NumGPIOs covers GP0..GP29.
const NumGPIOs = 30

var ErrOffset = errors.New("rp2chip: offset out of range")

type Chip struct{}

// Describe wraps the bank as a gpio.Chip registered under label.
func Describe(label string) gpio.Chip {
	return gpio.Chip{Label: label, NumGPIOs: NumGPIOs, Driver: Chip{}}
}

func (Chip) SetValue(offset uint16, value int) error {
	if offset >= NumGPIOs {
		return ErrOffset
	}
	machine.Pin(offset).Set(value != 0)
	return nil
}

func (Chip) GetValue(offset uint16) (int, error) {
	if offset >= NumGPIOs {
		return 0, ErrOffset
	}
	if machine.Pin(offset).Get() {
		return 1, nil
	}
	return 0, nil
}

// SetConfig applies direction and pull. FlagVal sets the initial level of
// an output.
func (Chip) SetConfig(offset uint16, cfg gpio.Config) error {
	if offset >= NumGPIOs {
		return ErrOffset
	}
	p := machine.Pin(offset)
	flags := cfg.Flags & cfg.Mask
	if flags&gpio.FlagDir != 0 {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Set(flags&gpio.FlagVal != 0)
		return nil
	}
	mode := machine.PinInput
	if cfg.Mask&gpio.FlagPull != 0 {
		if flags&gpio.FlagPull != 0 {
			mode = machine.PinInputPullup
		} else {
			mode = machine.PinInputPulldown
		}
	}
	p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

var _ gpio.Driver = Chip{}
