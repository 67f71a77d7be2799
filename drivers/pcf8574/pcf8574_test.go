package pcf8574

import (
	"errors"
	"sync"
	"testing"

	"devobj-go/gpio"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeI2C)(nil)

// fakeI2C models one expander: writes set the latch, reads return the latch
// ANDed with externally pulled-low lines.
type fakeI2C struct {
	mu     sync.Mutex
	addr   uint16
	latch  byte
	pulled byte // lines held low from outside
	writes int
	fail   error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.addr = addr
	if len(w) == 1 {
		f.latch = w[0]
		f.writes++
	}
	if len(r) == 1 {
		r[0] = f.latch &^ f.pulled
	}
	return nil
}

func TestSetValuePreservesOtherLines(t *testing.T) {
	bus := &fakeI2C{latch: 0xFF}
	d := New(bus, 0)
	if err := d.SetValue(3, 0); err != nil {
		t.Fatal(err)
	}
	if bus.latch != 0xF7 || bus.addr != Address {
		t.Fatalf("latch=%#x addr=%#x", bus.latch, bus.addr)
	}
	if err := d.SetValue(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := d.SetValue(3, 1); err != nil {
		t.Fatal(err)
	}
	if bus.latch != 0xFE || d.Latch() != 0xFE {
		t.Fatalf("latch=%#x shadow=%#x", bus.latch, d.Latch())
	}
}

func TestGetValueReadsPins(t *testing.T) {
	bus := &fakeI2C{latch: 0xFF, pulled: 1 << 5}
	d := New(bus, 0x21)
	v, err := d.GetValue(5)
	if err != nil || v != 0 {
		t.Fatalf("line 5: v=%d err=%v", v, err)
	}
	v, err = d.GetValue(4)
	if err != nil || v != 1 {
		t.Fatalf("line 4: v=%d err=%v", v, err)
	}
	if bus.addr != 0x21 {
		t.Fatalf("addr=%#x", bus.addr)
	}
}

func TestSetConfigDirection(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus, 0)
	if err := d.SetConfig(2, gpio.Config{Flags: gpio.FlagDir, Mask: gpio.FlagDir}); err != nil {
		t.Fatal(err)
	}
	if bus.latch&(1<<2) != 0 {
		t.Fatal("output low not driven")
	}
	if err := d.SetConfig(2, gpio.Config{Flags: 0, Mask: gpio.FlagDir}); err != nil {
		t.Fatal(err)
	}
	if bus.latch&(1<<2) == 0 {
		t.Fatal("input not released")
	}
	writes := bus.writes
	if err := d.SetConfig(2, gpio.Config{Flags: gpio.FlagPull, Mask: gpio.FlagPull}); err != nil {
		t.Fatal(err)
	}
	if bus.writes != writes {
		t.Fatal("pull-only config touched the bus")
	}
}

func TestErrors(t *testing.T) {
	boom := errors.New("nack")
	bus := &fakeI2C{latch: 0xFF, fail: boom}
	d := New(bus, 0)
	if err := d.SetValue(1, 1); !errors.Is(err, boom) {
		t.Fatalf("set: %v", err)
	}
	if d.Latch() != 0xFF {
		t.Fatal("failed write moved the shadow latch")
	}
	if _, err := d.GetValue(1); !errors.Is(err, boom) {
		t.Fatalf("get: %v", err)
	}
	if err := d.SetValue(8, 1); !errors.Is(err, ErrOffset) {
		t.Fatalf("offset: %v", err)
	}
	if _, err := d.GetValue(8); !errors.Is(err, ErrOffset) {
		t.Fatalf("offset: %v", err)
	}
	if err := d.SetConfig(8, gpio.Config{}); !errors.Is(err, ErrOffset) {
		t.Fatalf("offset: %v", err)
	}
}

func TestThroughSubsystem(t *testing.T) {
	bus := &fakeI2C{latch: 0xFF}
	exp := New(bus, 0)
	if err := exp.Configure(); err != nil {
		t.Fatal(err)
	}
	sub := gpio.NewSubsystem()
	if err := sub.AddLookupTable(&gpio.LookupTable{Entries: []gpio.Lookup{
		{ID: 40, ChipLabel: "exp0", Offset: 6, Flags: gpio.FlagActiveLow},
	}}); err != nil {
		t.Fatal(err)
	}
	if err := sub.AddChipTable(&gpio.ChipTable{Chips: []gpio.Chip{exp.Describe("exp0")}}); err != nil {
		t.Fatal(err)
	}
	led, err := sub.Open(40)
	if err != nil {
		t.Fatal(err)
	}
	if err := led.Set(1); err != nil {
		t.Fatal(err)
	}
	if bus.latch != 0xBF {
		t.Fatalf("active-low LED not driven low: %#x", bus.latch)
	}
}
