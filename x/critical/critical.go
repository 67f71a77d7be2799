// Package critical provides the short critical sections that guard state
// shared between thread and interrupt context.
//
// On bare-metal TinyGo builds a section masks interrupts; on host builds it
// is a mutex, which gives the same exclusion between goroutines standing in
// for the application thread and an interrupt handler.
package critical

// State is whatever Enter must hand back to Exit (the saved interrupt mask
// on MCU builds).
type State uintptr

// Section is entered and exited symmetrically around every access to the
// guarded state, on every return path.
type Section interface {
	Enter() State
	Exit(State)
}

// None performs no exclusion. It suits buffers touched from one goroutine only.
type None struct{}

func (None) Enter() State { return 0 }
func (None) Exit(State)   {}
