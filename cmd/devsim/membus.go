package main

import (
	"sync"

	"tinygo.org/x/drivers"
)

// memBus is an in-process I²C bus with one 8-bit quasi-bidirectional port
// per address, enough to host PCF8574-style expanders.
type memBus struct {
	mu    sync.Mutex
	ports map[uint16]byte
}

var _ drivers.I2C = (*memBus)(nil)

func newMemBus() *memBus { return &memBus{ports: map[uint16]byte{}} }

func (b *memBus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(w) > 0 {
		b.ports[addr] = w[len(w)-1]
	}
	if len(r) > 0 {
		v, ok := b.ports[addr]
		if !ok {
			v = 0xFF
		}
		for i := range r {
			r[i] = v
		}
	}
	return nil
}
