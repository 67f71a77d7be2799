package gpio

import (
	"errors"

	"devobj-go/device"
	"devobj-go/errcode"
	"devobj-go/x/arena"
	"devobj-go/x/clist"
)

// Desc is a resolved GPIO. It stays valid until destroyed through
// device.Delete or Subsystem.Destroy.
type Desc struct {
	sub    *Subsystem
	chip   *Chip
	lookup *Lookup
	ref    arena.Ref
	link   clist.Handle
}

// Class returns the owning subsystem, or nil once the descriptor is destroyed.
func (d *Desc) Class() device.Class {
	if d.sub == nil {
		return nil
	}
	return d.sub
}

func (d *Desc) ID() uint16     { return d.lookup.ID }
func (d *Desc) Offset() uint16 { return d.lookup.Offset }
func (d *Desc) Flags() uint16  { return d.lookup.Flags }
func (d *Desc) Label() string  { return d.chip.Label }

// errDead reports use of a destroyed descriptor.
var errDead = errors.New("gpio: descriptor destroyed")

func (d *Desc) activeLow() bool { return d.lookup.Flags&FlagActiveLow != 0 }

// Set drives the logical value v (0 or non-zero).
func (d *Desc) Set(v int) error {
	if d.sub == nil {
		return errcode.Wrap("gpio.set", errcode.Fail, errDead)
	}
	if d.activeLow() {
		v = invert(v)
	}
	if err := d.chip.Driver.SetValue(d.lookup.Offset, v); err != nil {
		return errcode.Wrap("gpio.set", errcode.Fail, err)
	}
	return nil
}

// Get reads the logical value of the line.
func (d *Desc) Get() (int, error) {
	if d.sub == nil {
		return 0, errcode.Wrap("gpio.get", errcode.Fail, errDead)
	}
	v, err := d.chip.Driver.GetValue(d.lookup.Offset)
	if err != nil {
		return 0, errcode.Wrap("gpio.get", errcode.Fail, err)
	}
	if d.activeLow() {
		v = invert(v)
	}
	return v, nil
}

func invert(v int) int {
	if v != 0 {
		return 0
	}
	return 1
}
