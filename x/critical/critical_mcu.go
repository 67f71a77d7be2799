//go:build baremetal

package critical

import "runtime/interrupt"

// IRQ masks interrupts for the duration of the section. Sections nest: Exit
// restores the mask saved by the matching Enter.
type IRQ struct{}

func (IRQ) Enter() State { return State(interrupt.Disable()) }
func (IRQ) Exit(s State) { interrupt.Restore(interrupt.State(s)) }

// Default returns a fresh section suitable for the build target.
func Default() Section { return IRQ{} }
