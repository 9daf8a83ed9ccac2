// Package irq owns the interrupt mask registers used for bus-change
// detection. It maps each logical signal to either a dedicated external
// interrupt line or a bit inside a shared pin-change group, and is the only
// code that modifies EIMSK, EICRx, PCICR and PCMSKn.
//
// Mask updates run inside a critical section because a group's mask may be
// modified from the main context while a sibling pin's handler, running from
// the same vector, modifies it too.
package irq

import (
	"sync/atomic"

	"diskhal-go/hal/pins"
	"diskhal-go/hal/signal"
)

type route struct {
	b       Binding
	handler func()
	hits    uint32
}

// Router enables, disables and dispatches bus-change interrupts.
type Router struct {
	regs   pins.Registers
	cs     critical
	routes [signal.Count]route
}

// Route pairs a signal with its binding for New.
type Route struct {
	Signal  signal.Signal
	Binding Binding
}

// New creates a router over regs. Unbound entries are ignored.
func New(regs pins.Registers, routes ...Route) *Router {
	r := &Router{regs: regs}
	for _, rt := range routes {
		if rt.Signal == signal.None || rt.Signal >= signal.Count || !rt.Binding.Bound() {
			continue
		}
		r.routes[rt.Signal].b = rt.Binding
	}
	return r
}

// Init programs the fixed edge sense of every dedicated line, clears stale
// flags and switches on each pin-change group in use. Group enables are left
// on; individual pins are gated by their PCMSK bit only. All signal masks
// start disabled.
func (r *Router) Init() {
	r.cs.do(func() {
		var groups, lines uint8
		for i := range r.routes {
			b := r.routes[i].b
			switch b.Kind {
			case KindDedicated:
				reg, mask, val := b.senseReg()
				r.regs.Store(reg, r.regs.Load(reg)&^mask|val)
				pins.ClearBits(r.regs, pins.EIMSK, 1<<b.Line)
				lines |= 1 << b.Line
			case KindGroup:
				pins.ClearBits(r.regs, pins.PCMSK(b.Group), 1<<b.Bit)
				groups |= 1 << b.Group
			}
		}
		if lines != 0 {
			r.regs.Store(pins.EIFR, lines)
		}
		if groups != 0 {
			pins.SetBits(r.regs, pins.PCICR, groups)
			r.regs.Store(pins.PCIFR, groups)
		}
	})
}

// Bound reports whether sig has an interrupt source on this board.
func (r *Router) Bound(sig signal.Signal) bool {
	return sig < signal.Count && r.routes[sig].b.Bound()
}

// Binding returns the binding of sig.
func (r *Router) Binding(sig signal.Signal) Binding {
	if sig >= signal.Count {
		return Binding{}
	}
	return r.routes[sig].b
}

// Enable unmasks sig's interrupt. Idempotent; no-op when unbound.
func (r *Router) Enable(sig signal.Signal) { r.Set(sig, true) }

// Disable masks sig's interrupt. Idempotent; no-op when unbound.
func (r *Router) Disable(sig signal.Signal) { r.Set(sig, false) }

// Set enables or disables sig's interrupt, touching only its own mask bit.
func (r *Router) Set(sig signal.Signal, on bool) {
	if !r.Bound(sig) {
		return
	}
	reg, bit := r.routes[sig].b.maskReg()
	r.cs.do(func() { pins.Update(r.regs, reg, bit, on) })
}

// Enabled reports the current mask state of sig.
func (r *Router) Enabled(sig signal.Signal) bool {
	if !r.Bound(sig) {
		return false
	}
	reg, bit := r.routes[sig].b.maskReg()
	return r.regs.Load(reg)&bit != 0
}

// Handle installs the handler run when sig's vector fires while sig is
// enabled. It must be called before interrupts are enabled.
func (r *Router) Handle(sig signal.Signal, h func()) {
	if sig >= signal.Count {
		return
	}
	r.routes[sig].handler = h
}

// Dispatch runs from vector v. A pin-change group cannot tell which pin
// moved, so every enabled signal on v has its handler called and is expected
// to sample the bus itself.
func (r *Router) Dispatch(v Vector) {
	for i := range r.routes {
		rt := &r.routes[i]
		if !rt.b.Bound() || rt.b.Vector() != v {
			continue
		}
		reg, bit := rt.b.maskReg()
		if r.regs.Load(reg)&bit == 0 {
			continue
		}
		atomic.AddUint32(&rt.hits, 1)
		if rt.handler != nil {
			rt.handler()
		}
	}
}

// Hits returns how many times sig's handler was dispatched.
func (r *Router) Hits(sig signal.Signal) uint32 {
	if sig >= signal.Count {
		return 0
	}
	return atomic.LoadUint32(&r.routes[sig].hits)
}
