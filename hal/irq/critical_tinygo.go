//go:build tinygo

package irq

import "runtime/interrupt"

// critical runs fn with global interrupts disabled so a handler cannot
// interleave with a read-modify-write of a shared mask register.
type critical struct{}

func (critical) do(fn func()) {
	st := interrupt.Disable()
	fn()
	interrupt.Restore(st)
}
