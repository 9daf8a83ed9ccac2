//go:build !tinygo

package irq

import "sync"

// critical serialises mask updates. On the host "interrupts" are simulator
// callbacks on other goroutines, so a mutex stands in for disabling them.
type critical struct{ mu sync.Mutex }

func (c *critical) do(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}
