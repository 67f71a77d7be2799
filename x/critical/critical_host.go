//go:build !baremetal

package critical

import "sync"

// Mutex is the host stand-in for an interrupt mask.
type Mutex struct{ mu sync.Mutex }

func (m *Mutex) Enter() State { m.mu.Lock(); return 0 }
func (m *Mutex) Exit(State)   { m.mu.Unlock() }

// Default returns a fresh section suitable for the build target.
func Default() Section { return &Mutex{} }
